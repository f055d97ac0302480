package jwt

import (
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"testhub/internal/pkg/config"
	pkgErrors "testhub/pkg/errors"
)

// SessionClaims 会话Token, jti 即服务端会话ID
type SessionClaims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SessionID 对应的服务端会话
func (c *SessionClaims) SessionID() string {
	return c.ID
}

// GenerateToken 签发会话Token(HS256)
func GenerateToken(cfg *config.JWTConfig, sessionID string, userID int64, role string, expiresAt time.Time) (string, error) {
	if cfg.Secret == "" {
		return "", pkgErrors.New(pkgErrors.CodeInternalError, "未配置JWT密钥")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    cfg.Issuer,
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析并校验Token(签名、过期时间、签发方)
func ParseToken(cfg *config.JWTConfig, tokenString string) (*SessionClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		if stdErrors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgErrors.ErrTokenExpired
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, pkgErrors.ErrInvalidToken
	}
	return claims, nil
}
