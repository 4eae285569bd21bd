package middleware

import "github.com/gin-gonic/gin"

// accountIDKey is the key under which handlers record the account acting in a request.
const accountIDKey = contextKey("accountID")

// SetAccountID records the account acting in the current request. Analytics use it as the
// distinct id.
func SetAccountID(c *gin.Context, accountID string) {
	if accountID == "" {
		return
	}
	c.Set(string(accountIDKey), accountID)
}

// GetAccountIDFromContext retrieves the acting account ID from the Gin context.
// It returns the account ID and a boolean indicating if it was found.
func GetAccountIDFromContext(c *gin.Context) (string, bool) {
	accountIDVal, exists := c.Get(string(accountIDKey))
	if !exists {
		return "", false
	}

	accountID, ok := accountIDVal.(string)
	if !ok {
		return "", false
	}

	return accountID, true
}
