package jwt

import (
	"crypto/rsa"
	"errors"
	"time"

	"nueracare-api/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSubject     = errors.New("token has no subject")
	ErrSigningUnavailable = errors.New("token signing requires IDENTITY_JWT_SECRET")
)

// Claims are the session claims issued by the identity provider. The
// subject is the user id.
type Claims struct {
	SessionID string `json:"sid,omitempty"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the identity-provider user id carried in the subject.
func (c *Claims) UserID() string {
	return c.Subject
}

type JWTService struct {
	config    config.IdentityConfig
	publicKey *rsa.PublicKey
}

// NewJWTService verifies RS256 tokens when a public key is configured,
// HS256 tokens otherwise.
func NewJWTService(cfg config.IdentityConfig) (*JWTService, error) {
	s := &JWTService{config: cfg}
	if cfg.PublicKey != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, err
		}
		s.publicKey = key
	}
	return s, nil
}

// GenerateSessionToken mints an HS256 session token for local development
// and tests. It is unavailable when only a public key is configured.
func (s *JWTService) GenerateSessionToken(userID, email string) (string, string, error) {
	if s.config.Secret == "" || s.publicKey != nil {
		return "", "", ErrSigningUnavailable
	}

	tokenID := uuid.New().String()
	now := time.Now()
	claims := Claims{
		SessionID: tokenID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.config.Issuer,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if s.publicKey != nil {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, errors.New("invalid signing method")
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

func (s *JWTService) GetTokenExpiry() time.Duration {
	return s.config.TokenExpiry
}
