package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/response"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	jwtService jwt.Service
}

func NewAuthHandler(jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{jwtService: jwtService}
}

// Logout revokes the presented access token so it stops working before its
// expiry. Token issuance happens at the identity service, not here.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token := jwtauth.TokenFromHeader(r)
	if token == "" {
		response.Unauthorized(w, "No token provided")
		return
	}

	h.jwtService.RevokeToken(token)

	response.SuccessWithMessage(w, "Logged out", nil)
}
