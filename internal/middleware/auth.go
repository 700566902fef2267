package middleware

import (
	"context"
	"net/http"

	"github.com/aibuddy434-arch/SmartInterview/internal/models"
	"github.com/aibuddy434-arch/SmartInterview/internal/utils"
)

const authUserKey contextKey = "auth_user"

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user's claims in the request context.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := utils.ExtractTokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}

			claims, err := utils.ParseToken(jwtSecret, tokenString)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Invalid or expired token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthClaims retrieves the authenticated user's claims from context.
func GetAuthClaims(r *http.Request) *utils.AuthClaims {
	claims, _ := r.Context().Value(authUserKey).(*utils.AuthClaims)
	return claims
}
