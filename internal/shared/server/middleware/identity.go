package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userId"
	isGuestKey = "isGuest"

	// AnonymousUser is the identity for requests without a guest header.
	AnonymousUser = "anonymous"

	maxGuestIDLen = 64
)

var guestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Identity resolves the caller from the X-Guest-Id header and stores it in
// context. Requests without a usable header run as AnonymousUser.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" || len(guestID) > maxGuestIDLen || !guestIDPattern.MatchString(guestID) {
			c.Set(userIDKey, AnonymousUser)
			c.Set(isGuestKey, false)
			c.Next()
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set(isGuestKey, true)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
