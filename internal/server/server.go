package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ptslot/internal/auth"
	"ptslot/internal/booking"
	"ptslot/internal/config"
	"ptslot/internal/schedule"
	"ptslot/internal/sessionpack"
	"ptslot/internal/user"

	"github.com/gin-gonic/gin"
)

// Deps are the handlers and collaborators the router is built from.
type Deps struct {
	Tokens   *auth.Tokens
	Users    *user.Handler
	Schedule *schedule.Handler
	Bookings *booking.Handler
	Packs    *sessionpack.Handler
	// Checks are probed by /health, keyed by dependency name.
	Checks map[string]Check
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the router. ctx bounds background work such as the rate
// limiter's cleanup loop.
func New(ctx context.Context, cfg *config.Config, deps Deps) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(cfg.AllowedOrigins()),
		RateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.GET("/health", Health(deps.Checks))
	router.GET("/metrics", Metrics())
	router.GET("/swagger/*any", Swagger())

	public := router.Group("/auth")
	{
		public.POST("/register", deps.Users.Register)
		public.POST("/login", deps.Users.Login)
		public.POST("/refresh", deps.Users.Refresh)
	}

	authMiddleware := auth.Middleware(deps.Tokens)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", deps.Users.GetMe)
		protected.PUT("/me/push-id", deps.Users.SetPushID)
		protected.GET("/me/packs", deps.Packs.MyPacks)
		protected.GET("/schedule", deps.Schedule.GetSchedule)
		protected.GET("/slots", deps.Bookings.ListSlots)
		protected.POST("/bookings", deps.Bookings.CreateBooking)
		protected.GET("/bookings", deps.Bookings.ListMyBookings)
		protected.GET("/bookings/calendar.ics", deps.Bookings.Calendar)
		protected.POST("/bookings/:bookingID/cancel", deps.Bookings.CancelBooking)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.PUT("/schedule", deps.Schedule.UpdateSchedule)
		admin.GET("/holidays", deps.Schedule.ListHolidays)
		admin.POST("/holidays", deps.Schedule.CreateHoliday)
		admin.DELETE("/holidays/:date", deps.Schedule.DeleteHoliday)
		admin.GET("/bookings", deps.Bookings.ListByDate)
		admin.GET("/stats", deps.Bookings.Stats)
		admin.POST("/members/:memberID/packs", deps.Packs.IssuePack)
		admin.POST("/members/:memberID/checkin", deps.Packs.CheckIn)
	}

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
