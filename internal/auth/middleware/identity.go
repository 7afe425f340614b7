package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mind-engage/pizzaquiz/internal/rbac"
)

const issuer = "pizzaquiz"

// IdentityService signs the opaque user ID so a browser cannot pick
// someone else's record by editing its cookie.
type IdentityService struct {
	hmac []byte
	ttl  time.Duration
}

func NewIdentityService(secret string, ttl time.Duration) *IdentityService {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &IdentityService{hmac: []byte(secret), ttl: ttl}
}

func (a *IdentityService) TTL() time.Duration { return a.ttl }

type Claims struct {
	jwt.RegisteredClaims
}

func (a *IdentityService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

// Parse returns the user ID carried by a valid token.
func (a *IdentityService) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.Subject == "" {
		return "", errors.New("invalid identity token")
	}
	return c.Subject, nil
}

// Identify reads the identity cookie. Every request continues as a player;
// a missing or invalid cookie just leaves the subject empty.
func Identify(a *IdentityService, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := rbac.WithRole(r.Context(), rbac.RolePlayer)
			if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
				if sub, err := a.Parse(c.Value); err == nil {
					ctx = WithSubject(ctx, sub)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
