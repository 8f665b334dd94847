package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vacation-shop/go-backend/internal/auth"
	"github.com/vacation-shop/go-backend/pkg/e"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type ctxKey int

const claimsCtxKey ctxKey = iota

// AuthMiddleware проверяет bearer-токены и кладёт claims в контекст.
type AuthMiddleware struct {
	tokens *auth.TokenManager
	logger logger.Logger
}

func NewAuthMiddleware(tokens *auth.TokenManager, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// RequireAuth отклоняет запросы без валидного токена.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.parseBearer(r)
		if err != nil {
			a.logger.Warnf("%d unauthorized: %s %s", http.StatusUnauthorized, r.Method, r.URL.Path)
			WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RequireAdmin отклоняет запросы без административной роли. Должен
// стоять после RequireAuth.
func (a *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromCtx(r.Context())
		if !ok {
			WriteError(w, e.ErrUnauthorized)
			return
		}
		if !claims.IsAdmin() {
			a.logger.Warnf("%d forbidden: user_id=%d %s %s", http.StatusForbidden, claims.UserID, r.Method, r.URL.Path)
			WriteError(w, e.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// OptionalAuth кладёт claims в контекст, если токен передан и валиден,
// но не отклоняет анонимные запросы. Нужен для выдачи каталога:
// администраторы видят и неактивные товары.
func (a *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := a.parseBearer(r); err == nil {
			r = r.WithContext(withClaims(r.Context(), claims))
		}

		next.ServeHTTP(w, r)
	})
}

func (a *AuthMiddleware) parseBearer(r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, e.ErrUnauthorized
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, e.ErrInvalidToken
	}

	return a.tokens.Parse(token)
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromCtx возвращает claims запроса, если он аутентифицирован.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*auth.Claims)
	return claims, ok
}
