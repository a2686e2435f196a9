package middleware

import "github.com/gin-gonic/gin"

// staffIDKey is the key used to store the authenticated staff user's ID.
const staffIDKey = contextKey("staffID")

// GetStaffIDFromContext retrieves the authenticated staff ID from the Gin
// context, falling back to the request's standard context. The boolean
// reports whether an ID was found.
func GetStaffIDFromContext(c *gin.Context) (string, bool) {
	staffIDVal, exists := c.Get(string(staffIDKey))
	if !exists {
		if v := c.Request.Context().Value(staffIDKey); v != nil {
			if id, ok := v.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	staffID, ok := staffIDVal.(string)
	if !ok {
		return "", false
	}

	return staffID, true
}
