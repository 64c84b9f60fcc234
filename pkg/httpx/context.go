package httpx

import "context"

type ctxKey string

const (
	// CtxKeyAccountID carries the authenticated account id.
	CtxKeyAccountID ctxKey = "account_id"
	// CtxKeyClaims carries the full verified token claims.
	CtxKeyClaims ctxKey = "claims"
)

// AccountIDFromContext returns the authenticated account id, if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(string)
	return id, ok && id != ""
}
