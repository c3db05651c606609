package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/marketbase/storefront/internal/api/middleware"
	"github.com/marketbase/storefront/internal/errors"
	"github.com/marketbase/storefront/internal/models"
	"github.com/marketbase/storefront/internal/utils/response"
)

// currentClaims pulls the authenticated identity the middleware put on
// the context. Guards run before handlers, so a miss means the route
// was wired without Authenticate.
func currentClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid "+name))

		return uuid.Nil, false
	}

	return id, true
}
