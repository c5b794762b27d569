package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/repository"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. User is nil for the
// bootstrap super admin, whose identity exists only in configuration.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
	User   *domain.User
}

// ScopeInstitution returns the institution name this principal triages.
func (p *Principal) ScopeInstitution() string {
	if p.User == nil {
		return ""
	}
	return p.User.InstitutionName
}

// ScopeSector returns the sector name this principal triages.
func (p *Principal) ScopeSector() string {
	if p.User == nil {
		return ""
	}
	return p.User.SectorName
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	if principal == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// HandleOptional loads a principal when a bearer token is present and lets
// anonymous requests through. A malformed or unverifiable token is still
// rejected; only a genuinely absent token degrades to anonymous.
func (m *AuthMiddleware) HandleOptional(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	if principal != nil {
		c.Locals(principalKey, principal)
	}
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}

	// The bootstrap super admin has no users row to load.
	if claims.Role == domain.RoleSuperAdmin && claims.UserID == domain.SuperAdminID {
		return principal, nil
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("user not found")
		}
		return nil, apperrors.MapError(err)
	}
	principal.User = user
	principal.Role = user.Role
	return principal, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
