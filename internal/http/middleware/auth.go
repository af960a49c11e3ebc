package middleware

import (
	"net/http"
	"strings"

	"github.com/davidbz/quill/internal/auth"
	"github.com/davidbz/quill/internal/domain"
	"github.com/davidbz/quill/internal/http/response"
	"github.com/davidbz/quill/internal/observability"
)

const bearerPrefix = "Bearer "

// Authorize rejects requests whose bearer token is missing or invalid (401)
// or lacks the capability (403). The token subject is added to the context.
func Authorize(manager *auth.Manager, capability auth.Capability) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := observability.FromContext(ctx)

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				logger.Warn("missing bearer token")
				response.Error(ctx, w, domain.ErrUnauthorized)
				return
			}

			claims, err := manager.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
			if err != nil {
				logger.Warn("rejected bearer token", observability.Error(err))
				response.Error(ctx, w, domain.ErrUnauthorized)
				return
			}

			ctx = observability.WithSubject(ctx, claims.Subject)
			if !claims.Can(capability) {
				observability.FromContext(ctx).Warn("missing capability",
					observability.String("capability", string(capability)))
				response.Error(ctx, w, domain.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
