package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jimlawless/whereami"
	"github.com/vacation-shop/go-backend/internal/cfg"
	"github.com/vacation-shop/go-backend/pkg/e"
)

const RoleAdmin = "admin"

// Claims — полезная нагрузка токена: идентификатор пользователя,
// email и роль (admin присутствует только у администраторов).
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin сообщает, несёт ли токен административную роль.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// TokenManager выпускает и проверяет bearer-токены доступа.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *cfg.JWTCfg) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
	}
}

// Issue выпускает подписанный HS256 токен для пользователя.
func (m *TokenManager) Issue(userID int64, email string, isAdmin bool) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	if isAdmin {
		claims.Role = RoleAdmin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return signed, nil
}

// Parse проверяет подпись и срок действия токена и возвращает claims.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, e.Wrap(err.Error(), e.ErrInvalidToken)
	}

	if !token.Valid {
		return nil, e.ErrInvalidToken
	}

	return claims, nil
}
