//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/handler/httperr"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/pkg/jwt"
	"shortlet-booking/internal/pkg/password"
	"shortlet-booking/internal/testutil/authtest"
	"shortlet-booking/internal/testutil/httptest"
	"shortlet-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtCfg = config.JWTConfig{Secret: "test-secret-with-enough-entropy", CookieName: "access_token"}

func authRouter(t *testing.T, guards ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(jwtCfg.Secret, 0)), jwtCfg)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{m.RequireAuth()}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": string(actor.Role), "email": actor.Email})
	})
	r.GET("/me", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	tokens := authtest.NewJWTHelper(jwtCfg)
	id := uuid.New()

	t.Run("bearer token sets the actor", func(t *testing.T) {
		r := authRouter(t)
		token := tokens.GenerateToken(t, id, "guest@example.com", user.RoleGuest)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, map[string]string{"id": id.String(), "role": "guest", "email": "guest@example.com"}, body)
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		r := authRouter(t)
		token := tokens.GenerateToken(t, id, "host@example.com", user.RoleHost)

		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/me", nil, "",
			map[string]string{"Cookie": jwtCfg.CookieName + "=" + token})

		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
		msg   string
	}{
		{name: "no token", token: func(*testing.T) string { return "" }, msg: "Access token required"},
		{name: "expired token", token: func(t *testing.T) string { return tokens.CreateExpiredToken(t, id, user.RoleGuest) }, msg: "Invalid or expired token"},
		{name: "garbage token", token: func(*testing.T) string { return "not.a.jwt" }, msg: "Invalid or expired token"},
		{
			name: "signed with another secret",
			token: func(t *testing.T) string {
				other := authtest.NewJWTHelper(config.JWTConfig{Secret: "some-other-secret"})
				return other.GenerateToken(t, id, "guest@example.com", user.RoleGuest)
			},
			msg: "Invalid or expired token",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, authRouter(t), http.MethodGet, "/me", nil, tt.token(t))

			httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, tt.msg)
		})
	}
}

func TestRoleGuards(t *testing.T) {
	tokens := authtest.NewJWTHelper(jwtCfg)
	m := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(jwtCfg.Secret, 0)), jwtCfg)

	tests := []struct {
		name   string
		guard  gin.HandlerFunc
		role   user.Role
		expect int
	}{
		{name: "at least host: guest", guard: m.RequireRoleAtLeast(user.RoleHost), role: user.RoleGuest, expect: http.StatusForbidden},
		{name: "at least host: host", guard: m.RequireRoleAtLeast(user.RoleHost), role: user.RoleHost, expect: http.StatusOK},
		{name: "at least host: agent", guard: m.RequireRoleAtLeast(user.RoleHost), role: user.RoleAgent, expect: http.StatusOK},
		{name: "at least host: admin", guard: m.RequireRoleAtLeast(user.RoleHost), role: user.RoleAdmin, expect: http.StatusOK},
		{name: "at least operator: agent", guard: m.RequireRoleAtLeast(user.RoleOperator), role: user.RoleAgent, expect: http.StatusForbidden},
		{name: "exactly guest: guest", guard: m.RequireRole(user.RoleGuest), role: user.RoleGuest, expect: http.StatusOK},
		{name: "exactly guest: admin", guard: m.RequireRole(user.RoleGuest), role: user.RoleAdmin, expect: http.StatusForbidden},
		{name: "operator or admin: operator", guard: m.RequireRole(user.RoleOperator, user.RoleAdmin), role: user.RoleOperator, expect: http.StatusOK},
		{name: "operator or admin: host", guard: m.RequireRole(user.RoleOperator, user.RoleAdmin), role: user.RoleHost, expect: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tokens.GenerateToken(t, uuid.New(), "someone@example.com", tt.role)

			rec := httptest.PerformRequest(t, authRouter(t, tt.guard), http.MethodGet, "/me", nil, token)

			assert.Equal(t, tt.expect, rec.Code)
			if tt.expect == http.StatusForbidden {
				httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
			}
		})
	}

	t.Run("guard without auth is a wiring bug", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.GET("/ops", m.RequireRole(user.RoleOperator), func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/ops", nil, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireJobSecret(t *testing.T) {
	hash, err := password.HashPassword("cron-secret")
	require.NoError(t, err)

	tests := []struct {
		name    string
		hash    string
		secret  string
		expect  int
		message string
	}{
		{name: "valid secret", hash: hash, secret: "cron-secret", expect: http.StatusOK},
		{name: "wrong secret", hash: hash, secret: "guess", expect: http.StatusUnauthorized, message: "Invalid job secret"},
		{name: "missing secret", hash: hash, expect: http.StatusUnauthorized, message: "Job secret required"},
		{name: "not configured", secret: "cron-secret", expect: http.StatusServiceUnavailable, message: "not configured"},
		{name: "plaintext in config never matches", hash: "cron-secret", secret: "cron-secret", expect: http.StatusUnauthorized, message: "Invalid job secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.POST("/jobs/run", middleware.RequireJobSecret(config.JobsConfig{SecretHash: tt.hash}), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ran": true})
			})

			headers := map[string]string{}
			if tt.secret != "" {
				headers[middleware.JobSecretHeader] = tt.secret
			}
			rec := httptest.PerformRequestWithHeaders(t, r, http.MethodPost, "/jobs/run", nil, "", headers)

			if tt.expect == http.StatusOK {
				httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
				return
			}
			httptest.AssertErrorResponse(t, rec, tt.expect, tt.message)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(), middleware.CustomRecovery())
	r.GET("/conflict", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusConflict, errors.New("taken"), "Dates unavailable", gin.H{"reason": "taken"})
	})
	r.GET("/silent", func(c *gin.Context) {
		_ = c.Error(&gin.Error{
			Err:  errors.New("late failure"),
			Type: gin.ErrorTypePublic,
			Meta: httperr.Response{Status: http.StatusBadGateway},
		})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	t.Run("aborted responses are left alone", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/conflict", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "Dates unavailable")
		assert.Equal(t, "taken", httptest.DecodeErrorDetail(t, rec)["reason"])
	})

	t.Run("unwritten public errors are rendered", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/silent", nil, "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("panics become 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})
}
