package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"checkout/internal/adapters/in/http/api"
	"checkout/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorContextKey = "checkout.actor"

var errMissingActor = errors.New("request is not authenticated")

// Claims are the bearer token claims: the subject is the actor id and caps the
// capability names ("accountant", "customer", ...).
type Claims struct {
	jwt.RegisteredClaims
	Capabilities []string `json:"caps"`
}

// Authenticator verifies HS256 bearer tokens and turns them into actors.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return Authenticator{}, errors.New("jwt secret is required")
	}
	return Authenticator{secret: []byte(secret)}, nil
}

// Sign issues a token for actor, valid for ttl.
func (a Authenticator) Sign(actor kernel.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Capabilities: actor.Capabilities().Strings(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates the token and builds the actor. Unknown capability names
// are rejected rather than dropped.
func (a Authenticator) Parse(token string) (kernel.Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, err
	}
	if !parsed.Valid {
		return kernel.Actor{}, errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return kernel.Actor{}, err
	}
	id, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.Actor{}, err
	}

	caps := make([]kernel.Capability, 0, len(claims.Capabilities))
	for _, name := range claims.Capabilities {
		c, parseErr := kernel.ParseCapability(name)
		if parseErr != nil {
			return kernel.Actor{}, parseErr
		}
		caps = append(caps, c)
	}

	return kernel.NewActor(id, caps...)
}

// Middleware authenticates every request not skipped by skipper and stores
// the actor on the echo context.
func (a Authenticator) Middleware(skipper middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, api.Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			actor, err := a.Parse(strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, api.Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid bearer token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errMissingActor
	}
	return actor, nil
}

// publicRoute skips authentication and contract validation outside /api/v1.
func publicRoute(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, "/api/v1/") &&
		c.Request().URL.Path != "/api/v1"
}
