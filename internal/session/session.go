// Package session binds requests to authenticated users with a signed,
// time-bounded cookie. The cookie value is an HS256 JWT carrying the user id;
// the signature makes the client-side session tamper-evident. Every protected
// request reloads the user row, so sessions for deleted users drop back to
// anonymous immediately.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ewoodward/todolist/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued on login.
const CookieName = "todo_session"

// ErrUnauthorized is returned when a request carries no valid session.
var ErrUnauthorized = errors.New("unauthorized")

// UserLoader reconstructs identity from a persisted user id at the start of
// each request.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

type Manager struct {
	Secret []byte
	TTL    time.Duration
	Users  UserLoader
}

type userKey struct{}

// Issue signs a session token for userID, valid for the manager's TTL.
func (m *Manager) Issue(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(m.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

// Parse validates a session token and returns the user id it was issued for.
func (m *Manager) Parse(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrUnauthorized
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrUnauthorized
	}
	return int(id), nil
}

// SetCookie stores the session token on the client.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie invalidates the session on the client immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
}

// RequireUser guards protected routes. A missing, invalid, or expired token,
// or a token whose user no longer exists, clears the cookie and redirects to
// /login. On success the loaded user is placed in the request context.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		userID, err := m.Parse(cookie.Value)
		if err != nil {
			m.ClearCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		user, err := m.Users.GetByID(r.Context(), userID)
		if err != nil {
			// Account deleted since the token was issued: back to anonymous.
			m.ClearCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// CurrentUser retrieves the authenticated user placed by RequireUser.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok
}
