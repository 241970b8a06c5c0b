package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smarttransit/bus-ticketing-backend/pkg/jwt"
)

// EmployeeContextKey is the key used to store employee information in Gin context
const EmployeeContextKey = "employee"

// EmployeeContext represents the authenticated counter employee
type EmployeeContext struct {
	EmployeeID string `json:"employee_id"`
	Username   string `json:"username"`
}

// AuthMiddleware creates a middleware that validates employee session tokens
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Token cannot be empty",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid or expired session token",
				"code":    "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		c.Set(EmployeeContextKey, EmployeeContext{
			EmployeeID: claims.EmployeeID,
			Username:   claims.Username,
		})

		c.Next()
	}
}

// GetEmployeeContext retrieves the employee context from Gin context
func GetEmployeeContext(c *gin.Context) (EmployeeContext, bool) {
	value, exists := c.Get(EmployeeContextKey)
	if !exists {
		return EmployeeContext{}, false
	}

	employeeCtx, ok := value.(EmployeeContext)
	if !ok {
		return EmployeeContext{}, false
	}

	return employeeCtx, true
}
