package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alvimrfg/sistema-socio-40graus/internal/auth"
	"github.com/alvimrfg/sistema-socio-40graus/internal/booking"
	"github.com/alvimrfg/sistema-socio-40graus/internal/config"
	"github.com/alvimrfg/sistema-socio-40graus/internal/finance"
	"github.com/alvimrfg/sistema-socio-40graus/internal/holiday"
	"github.com/alvimrfg/sistema-socio-40graus/internal/inventory"
	"github.com/alvimrfg/sistema-socio-40graus/internal/member"
	"github.com/alvimrfg/sistema-socio-40graus/internal/report"
	"github.com/alvimrfg/sistema-socio-40graus/internal/settings"
	"github.com/alvimrfg/sistema-socio-40graus/internal/user"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	User      *user.Handler
	Member    *member.Handler
	Inventory *inventory.Handler
	Booking   *booking.Handler
	Finance   *finance.Handler
	Settings  *settings.Handler
	Holiday   *holiday.Handler
	Report    *report.Handler
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	routes := router.Group("/")
	routes.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	public := routes.Group("/auth")
	{
		public.POST("/login", h.User.Login)
		public.POST("/refresh", h.User.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := routes.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", h.User.GetMe)
		protected.PUT("/me/password", h.User.ChangePassword)
		protected.GET("/plans", h.Member.Plans)

		protected.GET("/members", h.Member.List)
		protected.POST("/members", h.Member.Create)
		protected.GET("/members/:id", h.Member.Get)
		protected.PUT("/members/:id", h.Member.Update)
		protected.DELETE("/members/:id", h.Member.Delete)
		protected.PATCH("/members/:id/payment-status", h.Member.UpdatePaymentStatus)
		protected.GET("/members/:id/dependents", h.Member.ListDependents)
		protected.POST("/members/:id/dependents", h.Member.AddDependent)
		protected.DELETE("/members/:id/dependents/:dependentID", h.Member.RemoveDependent)
		protected.GET("/members/:id/balance", h.Booking.Balance)
		protected.GET("/members/:id/bookings", h.Booking.ListByMember)
		protected.GET("/members/:id/transactions", h.Finance.List)
		protected.POST("/members/:id/transactions", h.Finance.Record)

		protected.GET("/accommodations", h.Inventory.List)
		protected.GET("/accommodations/:type", h.Inventory.Get)
		protected.GET("/accommodations/:type/availability", h.Inventory.Availability)

		protected.POST("/bookings", h.Booking.Create)
		protected.GET("/bookings", h.Booking.List)
		protected.GET("/bookings/:id", h.Booking.Get)
		protected.PATCH("/bookings/:id/status", h.Booking.SetStatus)

		protected.GET("/reports/calendar", h.Report.Calendar)
		protected.GET("/reports/dashboard", h.Report.Dashboard)
		protected.GET("/reports/quota-distribution", h.Report.QuotaDistribution)
		protected.GET("/reports/upcoming-checkins", h.Report.UpcomingCheckins)
	}

	admin := routes.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.POST("/accommodations", h.Inventory.Create)
		admin.PUT("/accommodations/:type", h.Inventory.UpdateQuantity)

		admin.GET("/settings", h.Settings.List)
		admin.PUT("/settings/:key", h.Settings.Update)

		admin.GET("/holidays", h.Holiday.List)
		admin.POST("/holidays", h.Holiday.Create)
		admin.DELETE("/holidays/:id", h.Holiday.Delete)

		admin.GET("/users", h.User.List)
		admin.POST("/users", h.User.Create)
		admin.PUT("/users/:id", h.User.Update)
		admin.DELETE("/users/:id", h.User.Delete)
	}

	return &Server{
		router: router,
		config: cfg,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
