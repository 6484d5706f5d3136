package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const callerKey = "caller"

// Claims carried by access tokens issued by the auth service.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth verifies the bearer token and stores the resulting caller on the
// request context.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			caller, err := parseToken(secret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			SetCaller(c, caller)
			return next(c)
		}
	}
}

func parseToken(secret []byte, raw string) (service.Caller, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return service.Caller{}, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return service.Caller{}, err
	}
	if !claims.Role.Valid() {
		return service.Caller{}, errors.New("unknown role")
	}
	return service.Caller{ID: id, Role: claims.Role}, nil
}

// IssueToken signs an HS256 token for id and role.
func IssueToken(secret []byte, id uuid.UUID, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func SetCaller(c echo.Context, caller service.Caller) {
	c.Set(callerKey, caller)
}

func CallerFrom(c echo.Context) (service.Caller, bool) {
	caller, ok := c.Get(callerKey).(service.Caller)
	return caller, ok
}
