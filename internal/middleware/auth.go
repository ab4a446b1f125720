package middleware

import (
	"net/http"
	"strings"

	"unboxx/internal/apierror"
	"unboxx/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	CallerKey = "caller"
)

// JWTAuth validates the access token on every protected route. The token is
// read from the Authorization header first, then from the session cookie.
// Browsers asking for HTML are sent to loginPath; API clients get a 401.
func JWTAuth(secret, cookieName, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" && cookieName != "" {
			raw, _ = c.Cookie(cookieName)
		}
		if raw == "" {
			unauthenticated(c, loginPath, "Authentication required")
			return
		}

		claims, err := service.ParseToken(raw, secret)
		if err != nil || claims.Type != service.TokenAccess {
			unauthenticated(c, loginPath, "Invalid or expired token")
			return
		}

		c.Set(CallerKey, service.Caller{AuthID: claims.AuthID, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func unauthenticated(c *gin.Context, loginPath, msg string) {
	if loginPath != "" && wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New(msg))
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// RequireRole rejects requests whose caller role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok || !allowed[caller.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permission denied"))
			return
		}
		c.Next()
	}
}

// GetCaller retrieves the authenticated caller from the Gin context.
func GetCaller(c *gin.Context) (service.Caller, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return service.Caller{}, false
	}
	caller, ok := v.(service.Caller)
	return caller, ok
}
