package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	chatH *ChatHandler,
	locationH *LocationHandler,
	musicH *MusicHandler,
	dietH *DietHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// Rutas públicas.
	users := r.Group("/users")
	users.POST("", userH.CreateUser)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.RefreshToken)
	auth.POST("/logout", userH.Logout)

	// Rutas protegidas por JWT.
	protected := r.Group("/", JWTAuthMiddleware(jwtSvc))
	protected.GET("/profile", userH.GetProfile)
	protected.PUT("/profile/setup", userH.SetupProfile)

	protected.POST("/session", chatH.CreateSession)
	protected.POST("/session/:id/complete", chatH.CompleteSession)
	protected.GET("/session/:id/messages", chatH.GetSessionMessages)
	protected.POST("/message", chatH.PostMessage)
	protected.GET("/questions", chatH.GetQuestions)
	protected.GET("/assessments", chatH.GetAssessmentHistory)

	protected.POST("/location", locationH.RecordSample)
	protected.GET("/location/frequent", locationH.GetFrequent)

	protected.GET("/music", musicH.ListTracks)
	protected.GET("/diet", dietH.GetPlan)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
