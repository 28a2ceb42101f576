package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/washly/pkg/guard"
	"github.com/shashiranjanraj/washly/pkg/logger"
	"github.com/shashiranjanraj/washly/pkg/metrics"
	"github.com/shashiranjanraj/washly/pkg/response"
)

// Authenticated resolves the bearer token into a live Principal and stores
// it in the request context. Handlers behind this middleware can rely on
// guard.FromCtx(r.Context()) being non-nil.
//
// Authorization is a hard gate: any failure terminates the request here,
// before a handler runs.
func Authenticated(users guard.UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := guard.Authenticate(r.Context(), r, users)
			if err != nil {
				// Absent and invalid credentials are the same 401 to the
				// client but stay distinguishable here.
				if ge := guard.As(err); ge != nil {
					logger.WithCtx(r.Context()).Warn("authentication failed",
						"reason", ge.Message,
						"path", r.URL.Path,
					)
					metrics.AuthFailure(ge.Kind)
				} else {
					logger.WithCtx(r.Context()).Error("principal lookup failed",
						"error", err.Error(),
						"path", r.URL.Path,
					)
				}
				response.GuardError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(guard.WithPrincipal(r.Context(), p)))
		})
	}
}
