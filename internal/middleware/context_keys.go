package middleware

import (
	"github.com/Navenbabu/Corporate-Expense-Tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// currentUserKey is the key under which the authenticated user is stored in
// the request context.
const currentUserKey = contextKey("currentUser")

// GetCurrentUser retrieves the authenticated user placed in the request
// context by AuthMiddleware. The second return value reports whether a user
// was found.
func GetCurrentUser(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(currentUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
