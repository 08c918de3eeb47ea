package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa o operador extraído do token JWT.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// WriteError escreve o erro no formato domain.ErrorResponse.
func WriteError(w http.ResponseWriter, err error) {
	status, category, msg := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: msg})
}

// NewAuthMiddleware valida o Bearer JWT e anexa as claims (UserID e Role) ao contexto.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return authenticate(tokenSvc, bearerToken)
}

// NewStreamAuthMiddleware é a variante do stream SSE: o EventSource não envia
// cabeçalhos, então o token também é aceito no parâmetro de query "token".
// Use apenas na rota de eventos.
func NewStreamAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return authenticate(tokenSvc, func(r *http.Request) string {
		if r.Header.Get("Authorization") == "" {
			return r.URL.Query().Get("token")
		}
		return bearerToken(r)
	})
}

func authenticate(tokenSvc TokenService, extract func(*http.Request) string) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := extract(r)
			if tokenString == "" {
				WriteError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				WriteError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			userClaims := UserClaims{
				UserID: claims.UserID,
				Role:   domain.UserRole(claims.Role),
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// Actor devolve o operador autenticado, usado como movedBy/registeredBy.
func Actor(ctx context.Context) string {
	claims, _ := GetUserClaimsFromContext(ctx)
	return claims.UserID
}

// PermissionMiddleware libera o acesso apenas para os papéis informados.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				WriteError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteError(w, apperror.NewForbiddenError("Acesso negado. Você não tem a permissão necessária."))
		}
	}
}
