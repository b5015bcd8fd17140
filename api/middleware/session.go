package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/afuwah/electronics-backend/pkg/config"
	"github.com/afuwah/electronics-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session resolves the anonymous shopper session identifier for the request.
// It honors an explicit X-Session-Id header first, then the session cookie,
// and mints a fresh uuid otherwise. The resolved id is echoed back in both
// the header and a refreshed cookie so browsers and API clients stay pinned
// to the same snapshot keys across visits.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
					sessionID = cookie.Value
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.CookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
