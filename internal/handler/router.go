package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shortlet-booking/internal/domain/user"
	"shortlet-booking/internal/handler/api"
	reqdto "shortlet-booking/internal/handler/dto/request"
	"shortlet-booking/internal/handler/middleware"
	"shortlet-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Payment      *api.PaymentHandler
	Payout       *api.PayoutHandler
	Block        *api.BlockHandler
	Job          *api.JobHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	if err := reqdto.RegisterValidators(); err != nil {
		slog.Error("failed to register request validators", "error", err)
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		// provider callbacks authenticate by signature
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/payments/webhook", Handler: h.Payment.Webhook},
		})

		jobs := apiGroup.Group("/jobs")
		jobs.Use(middleware.RequireJobSecret(cfg.Jobs))
		{
			addRoutes(jobs, []route{
				{Method: http.MethodPost, Path: "/expire-due", Handler: h.Job.ExpireDue},
				{Method: http.MethodPost, Path: "/payments/reconcile", Handler: h.Job.ReconcilePayments},
				{Method: http.MethodPost, Path: "/payouts/resolve", Handler: h.Job.ResolvePayouts},
				{Method: http.MethodPost, Path: "/notifications/dispatch", Handler: h.Job.DispatchNotifications},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			managers := authMiddleware.RequireRoleAtLeast(user.RoleHost)
			operators := authMiddleware.RequireRoleAtLeast(user.RoleOperator)

			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Get},
				{Method: http.MethodGet, Path: "/quote", Handler: h.Availability.Quote},

				{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/bookings/:id/decision", Handler: h.Booking.Decide, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: h.Booking.Cancel},

				{Method: http.MethodPost, Path: "/payments/intent", Handler: h.Payment.CreateIntent},
				{Method: http.MethodGet, Path: "/payments/status", Handler: h.Payment.Status},
				{Method: http.MethodPost, Path: "/payments/verify", Handler: h.Payment.Verify},

				{Method: http.MethodPost, Path: "/payouts/:id/pay", Handler: h.Payout.MarkPaid, Mw: []gin.HandlerFunc{operators}},

				{Method: http.MethodPost, Path: "/blocks", Handler: h.Block.Create, Mw: []gin.HandlerFunc{managers}},
				{Method: http.MethodDelete, Path: "/blocks/:id", Handler: h.Block.Delete, Mw: []gin.HandlerFunc{managers}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
