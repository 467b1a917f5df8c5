package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides the principal-id extraction used by the rate
// limiter's per-user key strategies.  JWTAuth stores the subject claim
// under "user_id"; unauthenticated requests key as "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable string identifier for the request's
// principal, or "anon" when no token was presented.  The value is only
// used for cache/rate-limit key construction, never for authorization.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64, int64, int:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
