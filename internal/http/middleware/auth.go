package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/acquitrack/internal/actor"
	"github.com/MrJamesThe3rd/acquitrack/internal/http/respond"
)

// Claims identify the acting user. The subject is the user id.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for a.
func IssueToken(secret string, a actor.Actor, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Name: a.Name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Authenticate attaches the acting user to the request context.
// A bearer token must be valid when present. Requests without one act as fallback.
// With an empty secret tokens are not checked and every request acts as fallback.
func Authenticate(secret string, fallback actor.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := fallback

			if header := r.Header.Get("Authorization"); header != "" && secret != "" {
				claims, err := parseBearer(header, secret)
				if err != nil {
					w.Header().Set("WWW-Authenticate", `Bearer realm="acquitrack"`)
					respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})

					return
				}

				a = actor.Actor{ID: claims.Subject, Name: claims.Name}
			}

			next.ServeHTTP(w, r.WithContext(actor.WithActor(r.Context(), a)))
		})
	}
}

func parseBearer(header, secret string) (*Claims, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, errors.New("invalid authorization header format")
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
