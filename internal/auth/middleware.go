package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-service/internal/i18n"
	apperrors "github.com/spec-kit/family-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as decoded from the token.
type Principal struct {
	ID   string
	Name string
}

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication. Failure is terminal for the request; the
// response body never says which check failed.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	loc := i18n.FromCtx(c)

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized(loc.T("unauthorized"))
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized(loc.T("unauthorized"))
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized(loc.T("unauthorized"))
	}

	c.Locals(principalKey, &Principal{ID: claims.ID, Name: claims.Name})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
