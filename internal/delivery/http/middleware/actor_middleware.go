package middleware

import (
	"net/http"

	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"
	"github.com/Ariel200609/TuTurnoYa/pkg/response"
)

// RequireActor checks that the authenticated caller is one of the allowed
// actor types. ActorType is read from context (set by AuthMiddleware).
func RequireActor(allowed ...jwt.ActorType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorType, ok := GetActorTypeFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Actor information not found")
				return
			}

			for _, a := range allowed {
				if actorType == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireUser guards end-user booking endpoints
func RequireUser(next http.Handler) http.Handler {
	return RequireActor(jwt.ActorUser)(next)
}

// RequireVenueOwner guards court management endpoints
func RequireVenueOwner(next http.Handler) http.Handler {
	return RequireActor(jwt.ActorVenueOwner)(next)
}

// RequireAdmin guards administrative overrides
func RequireAdmin(next http.Handler) http.Handler {
	return RequireActor(jwt.ActorAdmin)(next)
}

// RequireVenueOwnerOrAdmin guards venue-side lifecycle endpoints
func RequireVenueOwnerOrAdmin(next http.Handler) http.Handler {
	return RequireActor(jwt.ActorVenueOwner, jwt.ActorAdmin)(next)
}
