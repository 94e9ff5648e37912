package handler

import (
	"net/http"

	"car-rental-platform/internal/domain/user"
	"car-rental-platform/internal/handler/api"
	"car-rental-platform/internal/handler/httperr"
	"car-rental-platform/internal/handler/middleware"
	"car-rental-platform/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Vehicle     *api.VehicleHandler
	Reservation *api.ReservationHandler
	Auth        *middleware.AuthMiddleware
	Logger      *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	httperr.UseWireFieldNames()
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		vehicles := apiGroup.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "/:id/pricing", Handler: h.Vehicle.GetPricing},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Vehicle.GetAvailability},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(h.Auth.RequireAuth())
		{
			addRoutes(reservations, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: h.Reservation.Create,
					Mw:      []gin.HandlerFunc{h.Auth.RequireRole(user.RoleClient)},
				},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{
					Method:  http.MethodPatch,
					Path:    "/:id/status",
					Handler: h.Reservation.UpdateStatus,
					Mw:      []gin.HandlerFunc{h.Auth.RequireRole(user.StaffRoles...)},
				},
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
