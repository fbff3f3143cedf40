package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cosanostra/internal/app"
	"cosanostra/internal/app/session"
	"cosanostra/internal/catalog"
	"cosanostra/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// SessionRequest is the payload shared by all session RPCs. Each RPC reads
// only the fields it needs.
type SessionRequest struct {
	SessionID       string `json:"sessionId"`
	ExpectedVersion int64  `json:"expectedVersion"`
	DisplayName     string `json:"displayName,omitempty"`
	CardID          string `json:"cardId,omitempty"`
	OptionID        int    `json:"optionId,omitempty"`
	Rolled          []int  `json:"rolled,omitempty"`
	Ready           bool   `json:"ready,omitempty"`
}

// SessionResponse carries the caller's view after the call.
type SessionResponse struct {
	SessionID string            `json:"sessionId"`
	View      domain.PlayerView `json:"view"`
	Events    []EventMessage    `json:"events,omitempty"`
}

// EventMessage is an event the caller is allowed to see.
type EventMessage struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload,omitempty"`
}

// Handlers holds the services the RPCs run against.
type Handlers struct {
	sessions *session.Service
	catalog  *catalog.Catalog
}

// NewHandlers creates RPC handlers.
func NewHandlers(sessions *session.Service, cat *catalog.Catalog) *Handlers {
	return &Handlers{sessions: sessions, catalog: cat}
}

// RegisterRPCs registers every session RPC and the catalog RPC.
func RegisterRPCs(initializer runtime.Initializer, h *Handlers) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcSessionCreate:    h.RpcSessionCreate,
		RpcSessionJoin:      h.RpcSessionJoin,
		RpcSessionStart:     h.RpcSessionStart,
		RpcSessionGet:       h.RpcSessionGet,
		RpcSessionAdvance:   h.RpcSessionAdvance,
		RpcSessionBuy:       h.RpcSessionBuy,
		RpcSessionPlayOrder: h.RpcSessionPlayOrder,
		RpcSessionReady:     h.RpcSessionReady,
		RpcSessionDealToken: h.RpcSessionDealToken,
		RpcCatalogGet:       h.RpcCatalogGet,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return fmt.Errorf("register rpc %s: %w", id, err)
		}
	}
	return nil
}

// RpcSessionCreate opens a lobby hosted by the caller.
//
// Payload: {"displayName": "..."} (optional).
// Returns: SessionResponse for the new lobby.
func (h *Handlers) RpcSessionCreate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionCreate, payload, false, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Create(ctx, app.PlayerInfo{ID: userID, DisplayName: req.DisplayName})
	})
}

// RpcSessionJoin seats the caller in a lobby.
func (h *Handlers) RpcSessionJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionJoin, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Join(ctx, req.SessionID, app.PlayerInfo{ID: userID, DisplayName: req.DisplayName})
	})
}

// RpcSessionStart starts the game; only the host may call it.
func (h *Handlers) RpcSessionStart(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionStart, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Start(ctx, req.SessionID, userID, req.ExpectedVersion)
	})
}

// RpcSessionGet returns the caller's redacted view of a session the caller is seated in.
func (h *Handlers) RpcSessionGet(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionGet, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Get(ctx, req.SessionID, userID)
	})
}

// RpcSessionAdvance moves the session to its next phase.
func (h *Handlers) RpcSessionAdvance(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionAdvance, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Advance(ctx, req.SessionID, userID, req.ExpectedVersion)
	})
}

// RpcSessionBuy buys the business cardId from the market.
func (h *Handlers) RpcSessionBuy(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionBuy, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Buy(ctx, req.SessionID, userID, req.ExpectedVersion, req.CardID)
	})
}

// RpcSessionPlayOrder plays the order cardId with optionId and the rolled dice.
func (h *Handlers) RpcSessionPlayOrder(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionPlayOrder, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.PlayOrder(ctx, req.SessionID, userID, req.ExpectedVersion, req.CardID, req.OptionID, req.Rolled)
	})
}

// RpcSessionReady sets the caller's ready flag.
func (h *Handlers) RpcSessionReady(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionReady, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.Ready(ctx, req.SessionID, userID, req.ExpectedVersion, req.Ready)
	})
}

// RpcSessionDealToken spends one of the caller's deal tokens.
func (h *Handlers) RpcSessionDealToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return h.run(ctx, logger, RpcSessionDealToken, payload, true, func(userID string, req SessionRequest) (session.Result, error) {
		return h.sessions.SpendDealToken(ctx, req.SessionID, userID, req.ExpectedVersion)
	})
}

// RpcCatalogGet returns the loaded catalog in its exchange form.
func (h *Handlers) RpcCatalogGet(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	if _, ok := callerID(ctx); !ok {
		return "", errUnauthenticated
	}
	data, err := json.Marshal(h.catalog)
	if err != nil {
		logger.Error("%s: failed to marshal catalog: %v", RpcCatalogGet, err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(data), nil
}

type call func(userID string, req SessionRequest) (session.Result, error)

func (h *Handlers) run(ctx context.Context, logger runtime.Logger, rpc, payload string, needSession bool, fn call) (string, error) {
	userID, ok := callerID(ctx)
	if !ok {
		return "", errUnauthenticated
	}

	var req SessionRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload: "+err.Error(), codeInvalidArgument)
		}
	}
	if needSession && req.SessionID == "" {
		return "", errMissingSession
	}

	result, err := fn(userID, req)
	if err != nil {
		logger.Debug("%s [User:%s]: rejected: %v", rpc, userID, err)
		return "", toRuntimeError(logger, rpc, err)
	}
	if result.NotifyErr != nil {
		logger.Warn("%s [User:%s]: failed to notify session %s: %v", rpc, userID, result.SessionID, result.NotifyErr)
	}
	if result.ProfileErr != nil {
		logger.Warn("%s [User:%s]: failed to read profile: %v", rpc, userID, result.ProfileErr)
	}

	data, err := json.Marshal(SessionResponse{
		SessionID: result.SessionID,
		View:      result.View,
		Events:    visibleEvents(result.Events, userID),
	})
	if err != nil {
		logger.Error("%s: failed to marshal response: %v", rpc, err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(data), nil
}

// visibleEvents drops events addressed to other players.
func visibleEvents(events []app.Event, userID string) []EventMessage {
	var out []EventMessage
	for _, ev := range events {
		if !addressedTo(ev, userID) {
			continue
		}
		out = append(out, EventMessage{Kind: ev.Kind, Payload: ev.Payload})
	}
	return out
}

func addressedTo(ev app.Event, userID string) bool {
	if len(ev.Recipients) == 0 {
		return true
	}
	for _, r := range ev.Recipients {
		if r == userID {
			return true
		}
	}
	return false
}

func callerID(ctx context.Context) (string, bool) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	return userID, userID != ""
}
