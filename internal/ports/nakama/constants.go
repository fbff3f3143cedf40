package nakama

// RPC ids registered with Nakama.
const (
	RpcSessionCreate    = "session_create"
	RpcSessionJoin      = "session_join"
	RpcSessionStart     = "session_start"
	RpcSessionGet       = "session_get"
	RpcSessionAdvance   = "session_advance"
	RpcSessionBuy       = "session_buy"
	RpcSessionPlayOrder = "session_play_order"
	RpcSessionReady     = "session_ready"
	RpcSessionDealToken = "session_deal_token"
	RpcCatalogGet       = "catalog_get"
)

// Storage layout of session blobs. Sessions are system-owned objects.
const (
	SessionCollection = "sessions"
	systemUserID      = ""
)

// Notification sent to every seated player after an accepted mutation.
const (
	NotificationSubjectSessionUpdated = "session_updated"
	NotificationCodeSessionUpdated    = 100
)

// Runtime error codes (gRPC status codes) returned from RPCs.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
	codeUnauthenticated    = 16
)
