package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// Token formats accepted by NewTokenIssuer.
const (
	FormatJWT          = "jwt"
	FormatSecureCookie = "securecookie"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenIssuer mints and validates bearer tokens carrying a SessionUser.
type TokenIssuer interface {
	Issue(u SessionUser) (token string, expiresAt time.Time, err error)
	Parse(token string) (*SessionUser, error)
}

// NewTokenIssuer returns the issuer for format.
func NewTokenIssuer(format, secret, issuer string, ttl time.Duration) (TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %v", ttl)
	}
	switch format {
	case FormatJWT, "":
		return &JWTIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
	case FormatSecureCookie:
		return newCookieIssuer(secret, ttl), nil
	}
	return nil, fmt.Errorf("unknown token format %q", format)
}

/*─────────────────────────────── JWT ───────────────────────────────*/

// JWTIssuer signs HS256 JWTs whose subject is the user id.
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

type claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (j *JWTIssuer) Issue(u SessionUser) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(j.ttl)
	c := claims{
		Role:  u.Role,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (j *JWTIssuer) Parse(token string) (*SessionUser, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || c.Subject == "" || c.Role == "" {
		return nil, ErrInvalidToken
	}
	return &SessionUser{ID: c.Subject, Email: c.Email, Role: c.Role}, nil
}

/*──────────────────────────── securecookie ────────────────────────────*/

// cookieIssuer produces opaque, encrypted and authenticated tokens with
// gorilla/securecookie. Expiry is enforced through the codec's MaxAge.
type cookieIssuer struct {
	codec *securecookie.SecureCookie
	ttl   time.Duration
}

const cookieTokenName = "fresherlink-token"

func newCookieIssuer(secret string, ttl time.Duration) *cookieIssuer {
	hashKey := sha256.Sum256([]byte("hash:" + secret))
	blockKey := sha256.Sum256([]byte("block:" + secret))
	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.MaxAge(int(ttl.Seconds()))
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &cookieIssuer{codec: codec, ttl: ttl}
}

func (c *cookieIssuer) Issue(u SessionUser) (string, time.Time, error) {
	tok, err := c.codec.Encode(cookieTokenName, u)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode token: %w", err)
	}
	return tok, time.Now().Add(c.ttl), nil
}

func (c *cookieIssuer) Parse(token string) (*SessionUser, error) {
	var u SessionUser
	if err := c.codec.Decode(cookieTokenName, token, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if u.ID == "" || u.Role == "" {
		return nil, ErrInvalidToken
	}
	return &u, nil
}
