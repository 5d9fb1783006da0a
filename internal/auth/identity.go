package auth

import (
	"github.com/gin-gonic/gin"

	"medrecords-backend/internal/models"
)

// identityKey is the gin context key the session middleware binds the identity to.
const identityKey = "auth.identity"

// Identity is the authenticated user bound to a request. A nil *Identity is anonymous.
type Identity struct {
	User     *models.User
	RoleName string
}

// SetIdentity binds the identity to the request context.
func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity reads the bound identity, or nil when the request is anonymous.
func CurrentIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}
