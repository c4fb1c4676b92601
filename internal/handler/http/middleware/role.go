package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/response"
)

// PayrollAdminOnly gates statutory export and reporting endpoints. Regular
// employees can hold valid tokens but never trigger filings.
func PayrollAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "payroll_admin" {
			response.Forbidden(w, "Payroll admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
