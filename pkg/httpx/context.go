package httpx

type ctxKey string

const (
	// CtxKeyUser carries the resolved domain user for protected routes.
	CtxKeyUser ctxKey = "user"

	// CtxKeyUserID carries the authenticated user's id as a string, used
	// by the per-user rate limit key extractor.
	CtxKeyUserID ctxKey = "user_id"
)
