package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"campus-booking/internal/handler/api"
	"campus-booking/internal/handler/middleware"
	"campus-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, catalogHandler, notificationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	catalogHandler *api.CatalogHandler,
	notificationHandler *api.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	requireAdmin := authMiddleware.RequireAdmin()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/verify-otp", Handler: authHandler.VerifyOTP},
				{Method: http.MethodPost, Path: "/resend-otp", Handler: authHandler.ResendOTP},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
				{Method: http.MethodPost, Path: "/verification", Handler: authHandler.RequestVerification},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(requireAuth)
		{
			addRoutes(users, []route{
				{Method: http.MethodPut, Path: "/:id/verification", Handler: authHandler.ChangeVerification, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListRooms},
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetRoom},
				{Method: http.MethodGet, Path: "/:id/ratings", Handler: catalogHandler.RoomRatings},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: bookingHandler.Availability, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateRoom, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
			})
		}

		slots := apiGroup.Group("/slots")
		{
			addRoutes(slots, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListSlots},
				{Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateSlot, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
			})
		}

		articles := apiGroup.Group("/articles")
		{
			addRoutes(articles, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListArticles},
				{Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateArticle, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
			})
		}

		banners := apiGroup.Group("/banners")
		{
			addRoutes(banners, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListBanners},
				{Method: http.MethodPost, Path: "", Handler: catalogHandler.CreateBanner, Mw: []gin.HandlerFunc{requireAuth, requireAdmin}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Initiate},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.DeleteDraft},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: bookingHandler.Submit},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: bookingHandler.Reschedule},
				{Method: http.MethodPost, Path: "/:id/members", Handler: bookingHandler.AddMember},
				{Method: http.MethodDelete, Path: "/:id/members/:userId", Handler: bookingHandler.RemoveMember},
				{Method: http.MethodPost, Path: "/:id/rating", Handler: bookingHandler.Rate},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: bookingHandler.Approve, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: bookingHandler.Reject, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: bookingHandler.Complete, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodGet, Path: "/code/:code", Handler: bookingHandler.GetByCode, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(requireAuth)
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: notificationHandler.List},
				{Method: http.MethodPost, Path: "/:id/read", Handler: notificationHandler.MarkRead},
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
