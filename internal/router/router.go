package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dental-clinic-api/internal/handler"
	"dental-clinic-api/internal/middleware"
)

type Config struct {
	AllowedOrigins []string
	AccessSecret   string
}

// New assembles the full route table: public auth/refresh routes, then the
// cookie-gated private group.
func New(h *handler.Handler, cfg Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "Testing Backend")
	})

	api := r.Group("/api")

	// public
	rl := middleware.NewRateLimiter(5, 10)
	api.POST("/users/register", middleware.RateLimit(rl), h.Register)
	api.POST("/users/login", middleware.RateLimit(rl), h.Login)
	api.GET("/user/logout", h.Logout)
	api.GET("/refresh", h.Refresh)

	// private
	private := api.Group("")
	private.Use(middleware.Auth(cfg.AccessSecret, log))
	{
		private.POST("/generate-time-slots", h.GenerateTimeSlots)
		private.POST("/schedule-appointment", h.ScheduleAppointment)
		private.GET("/dentists", h.GetAllDentists)
		private.GET("/dentists/:dentistId/slots", h.GetTimeSlots)
		private.GET("/users/:userId/appointments", h.GetUserAppointments)
		private.DELETE("/users/appointments/:id", h.CancelAppointment)
		private.PUT("/users/appointments/:id", h.UpdateAppointment)
		private.GET("/get/user/auth", h.GetAuthUser)
		private.GET("/get/users", h.GetAllUsers)
	}

	return r
}
