package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column layout of the spreadsheet export.
const (
	colID = iota
	colType
	colSubtype
	colDefault
	colName
	colFamily
	colStrength
	colCost
	colOptionCount
	colRound
	colDice1
	colDice2
	colTarget
	colAction1
	colAction2
	colAmount1
	colAmount2
	colRequirement1
	colRequirement2
	colRequirement3
	colRequirement4
	colRequirement5
	colComment
	colIncome
	colPhase

	csvColumns
)

// ImportCSV reads the 25-column spreadsheet export (header row first) and
// returns exchange records. Classification and validation happen in Load.
func ImportCSV(r io.Reader) ([]RawEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var entries []RawEntry
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 || isBlank(record) {
			continue
		}
		entries = append(entries, entryFromRecord(record))
	}
	return entries, nil
}

func entryFromRecord(record []string) RawEntry {
	cols := make([]string, csvColumns)
	for i := 0; i < len(record) && i < csvColumns; i++ {
		cols[i] = strings.TrimSpace(record[i])
	}

	entry := RawEntry{
		ID:          cols[colID],
		Type:        cols[colType],
		Subtype:     cols[colSubtype],
		IsDefault:   cols[colDefault] == "Y",
		Name:        cols[colName],
		Family:      cols[colFamily],
		Description: cols[colComment],
		Phase:       cols[colPhase],
		Income:      atoiOrZero(cols[colIncome]),
		Target:      cols[colTarget],
		Round:       cols[colRound],
	}
	entry.Cost, entry.SpecialCost = splitQuantity(cols[colCost])
	entry.Strength, entry.StrengthText = splitQuantity(cols[colStrength])

	options := []struct{ text, dice, amount string }{
		{cols[colAction1], cols[colDice1], cols[colAmount1]},
		{cols[colAction2], cols[colDice2], cols[colAmount2]},
	}
	for i, o := range options {
		if o.text == "" && o.dice == "" {
			continue
		}
		opt := RawOption{ID: i + 1, Text: o.text, DiceSymbol: o.dice}
		if n, ok := leadingInt(o.amount); ok && n != 0 {
			opt.Amount = &n
		}
		entry.Options = append(entry.Options, opt)
	}

	for _, req := range cols[colRequirement1 : colRequirement5+1] {
		if req != "" {
			entry.Requirements = append(entry.Requirements, req)
		}
	}
	return entry
}

func splitQuantity(s string) (*int, *string) {
	if s == "" {
		zero := 0
		return &zero, nil
	}
	if n, ok := leadingInt(s); ok {
		return &n, nil
	}
	return nil, &s
}

func atoiOrZero(s string) int {
	n, _ := leadingInt(s)
	return n
}

// leadingInt reads the integer prefix of a cell, so "300zł" is 300 and "X" is
// not a number.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
