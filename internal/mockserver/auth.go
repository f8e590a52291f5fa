package mockserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type authCtxKey int

const claimsKey authCtxKey = 1

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// Claims is the payload of tokens issued by the mock backend
type Claims struct {
	Type  string `json:"typ"`
	Admin bool   `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

func (s *Server) signToken(u *user, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Type:  typ,
		Admin: u.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    "moodlit-mock",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// requireAuth rejects requests without a valid access token
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		c, err := s.parseToken(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")))
		if err != nil || c.Type != tokenAccess {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin must be mounted after requireAuth
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := r.Context().Value(claimsKey).(*Claims)
		if !ok || !c.Admin {
			writeError(w, http.StatusForbidden, "admin only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userIDFrom(ctx context.Context) string {
	if c, ok := ctx.Value(claimsKey).(*Claims); ok {
		return c.Subject
	}
	return ""
}
