//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"shortlet-booking/internal/domain/user"
	reqdto "shortlet-booking/internal/handler/dto/request"
	"shortlet-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const bearer = "bearer-token"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, reqdto.RegisterValidators())
	return gin.New()
}

// fakeAuth stands in for RequireAuth: any bearer header authenticates as *actor.
func fakeAuth(actor *shared.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", actor.ID)
		c.Set("user_role", actor.Role)
		c.Set("user_email", actor.Email)
		c.Next()
	}
}

func guestActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Email: "guest@example.com", Role: user.RoleGuest}
}
