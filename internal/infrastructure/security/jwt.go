package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/domain"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// JWTSigner signs and verifies one kind of token with one secret.
type JWTSigner struct {
	secret []byte
	issuer string
	typ    string
	now    func() time.Time
}

func NewJWTSigner(secret, issuer, typ string) *JWTSigner {
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
		typ:    typ,
		now:    time.Now,
	}
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

// Issue signs c with the given ttl.
func (s *JWTSigner) Issue(c auth.Claims, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := tokenClaims{
		Email: c.Email,
		Role:  string(c.Role),
		Type:  s.typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   c.UserID,
			ID:        c.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.ErrTokenSignFailed(err)
	}
	return signed, exp, nil
}

// Verify fails with token_expired or token_invalid.
func (s *JWTSigner) Verify(token string) (auth.Claims, error) {
	if token == "" {
		return auth.Claims{}, domain.ErrTokenInvalid()
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, domain.ErrTokenExpired()
		}
		return auth.Claims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Type != s.typ || claims.Subject == "" {
		return auth.Claims{}, domain.ErrTokenInvalid()
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return auth.Claims{}, domain.ErrTokenInvalid()
	}

	return auth.Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      role,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

type TokenConfig struct {
	Issuer        string
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// TokenService pairs an access signer and a refresh signer with independent
// secrets. A token from one never verifies with the other.
type TokenService struct {
	access     *JWTSigner
	refresh    *JWTSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(cfg TokenConfig) *TokenService {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		access:     NewJWTSigner(cfg.AccessSecret, cfg.Issuer, TypeAccess),
		refresh:    NewJWTSigner(cfg.RefreshSecret, cfg.Issuer, TypeRefresh),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (t *TokenService) IssueAccess(c auth.Claims) (string, time.Time, error) {
	return t.access.Issue(c, t.accessTTL)
}

func (t *TokenService) IssueRefresh(c auth.Claims) (string, time.Time, error) {
	return t.refresh.Issue(c, t.refreshTTL)
}

func (t *TokenService) VerifyAccess(token string) (auth.Claims, error) {
	return t.access.Verify(token)
}

func (t *TokenService) VerifyRefresh(token string) (auth.Claims, error) {
	return t.refresh.Verify(token)
}

func (t *TokenService) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenService) RefreshTTL() time.Duration { return t.refreshTTL }
