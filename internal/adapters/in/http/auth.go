package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var (
	ErrTokenIsMissing = errors.New("bearer token is required")
	ErrTokenIsInvalid = errors.New("token is invalid")
	ErrTokenIsExpired = errors.New("token is expired")
)

// Claims are the bearer token claims this service reads. Tokens are issued
// elsewhere and signed with the shared HMAC secret.
type Claims struct {
	Role        string `json:"role"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier turns a signed token into the Actor it speaks for.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify checks signature and expiry and builds the actor from the claims.
func (v *TokenVerifier) Verify(tokenString string) (user.Actor, error) {
	var claims Claims
	_, err := v.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if errors.Is(err, jwt.ErrTokenExpired) {
		return user.Actor{}, ErrTokenIsExpired
	}
	if err != nil {
		return user.Actor{}, fmt.Errorf("%w: %v", ErrTokenIsInvalid, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Actor{}, fmt.Errorf("%w: subject: %v", ErrTokenIsInvalid, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Actor{}, fmt.Errorf("%w: %v", ErrTokenIsInvalid, err)
	}

	var warehouseID *kernel.UUID
	if claims.WarehouseID != "" {
		wid, widErr := kernel.UUIDFromString(claims.WarehouseID)
		if widErr != nil {
			return user.Actor{}, fmt.Errorf("%w: warehouse_id: %v", ErrTokenIsInvalid, widErr)
		}
		warehouseID = &wid
	}

	actor, err := user.NewActor(id, role, warehouseID)
	if err != nil {
		return user.Actor{}, fmt.Errorf("%w: %v", ErrTokenIsInvalid, err)
	}
	return actor, nil
}

// Authenticate rejects requests without a valid bearer token with 401 and
// stores the verified actor on the echo context.
func Authenticate(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return writeStatus(c, http.StatusUnauthorized, ErrTokenIsMissing.Error())
			}

			actor, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return writeStatus(c, http.StatusUnauthorized, err.Error())
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireRoles lets only the listed roles through, answering 403 otherwise.
// It must run after Authenticate.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := actorFrom(c)
			if !ok {
				return writeStatus(c, http.StatusUnauthorized, ErrTokenIsMissing.Error())
			}
			for _, role := range roles {
				if actor.Role() == role {
					return next(c)
				}
			}
			return writeStatus(c, http.StatusForbidden,
				fmt.Sprintf("role %s is not allowed to use this endpoint", actor.Role()))
		}
	}
}

func actorFrom(c echo.Context) (user.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	return actor, ok
}
