package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	authmw "github.com/mind-engage/pizzaquiz/internal/auth/middleware"
	"github.com/mind-engage/pizzaquiz/internal/rbac"
)

// SetIdentityCookie (re)issues the signed identity for userID and refreshes
// its expiry.
func SetIdentityCookie(w http.ResponseWriter, r *http.Request, a *authmw.IdentityService, name, userID string) error {
	tok, err := a.Issue(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(a.TTL()),
	})
	return nil
}

func ClearIdentityCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// OperatorBasicAuth admits requests carrying the operator's credentials and
// marks them with the operator role. An empty hash disables the operator.
func OperatorBasicAuth(user, passHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || passHash == "" ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passHash), []byte(p)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="pizzaquiz-admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := authmw.WithSubject(r.Context(), u)
			next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, rbac.RoleOperator)))
		})
	}
}
