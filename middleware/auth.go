package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"motodealer-api/auth"
	"motodealer-api/utils"
)

const identityKey = "identity"

// Guard verifies bearer credentials and enforces the two access tiers.
type Guard struct {
	tokens *auth.TokenIssuer
}

func NewGuard(tokens *auth.TokenIssuer) *Guard {
	return &Guard{tokens: tokens}
}

// RequireAuthenticated returns the identity of a request carrying a valid bearer token.
func (g *Guard) RequireAuthenticated(r *http.Request) (*auth.Identity, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, utils.NewUnauthenticatedError("Authorization required")
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		return nil, utils.NewUnauthenticatedError("Invalid or expired token")
	}
	return identity, nil
}

// RequireAdministrator additionally requires the admin role.
func (g *Guard) RequireAdministrator(r *http.Request) (*auth.Identity, error) {
	identity, err := g.RequireAuthenticated(r)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() {
		return nil, utils.NewForbiddenError("Access denied. Administrators only.")
	}
	return identity, nil
}

// Authenticated is the gin form of RequireAuthenticated.
func (g *Guard) Authenticated() gin.HandlerFunc {
	return g.handler(g.RequireAuthenticated)
}

// Administrator is the gin form of RequireAdministrator.
func (g *Guard) Administrator() gin.HandlerFunc {
	return g.handler(g.RequireAdministrator)
}

func (g *Guard) handler(check func(*http.Request) (*auth.Identity, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := check(c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by the guard for this request, or nil
// on routes the guard does not cover.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, _ := value.(*auth.Identity)
	return identity
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
