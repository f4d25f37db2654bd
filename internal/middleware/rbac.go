package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
	"github.com/noah-isme/mergington-activities-api/pkg/response"
)

// RequireRoles allows the request through only for the listed teacher roles.
// It must run after JWT.
func RequireRoles(roles ...models.TeacherRole) gin.HandlerFunc {
	allowed := make(map[models.TeacherRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[principal.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
