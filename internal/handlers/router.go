package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/auth"
	"github.com/mentorhub/matching-service/internal/config"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	profileHandler      *ProfileHandler
	mentorHandler       *MentorHandler
	matchRequestHandler *MatchRequestHandler
	meetingHandler      *MeetingHandler
	authMiddleware      *JWTAuthMiddleware
	authRateLimiter     *RateLimiter
	repoManager         repositories.RepositoryManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokenManager *auth.TokenManager,
	logger utils.Logger,
	cfg *config.Config,
	userRepo repositories.UserRepository,
	repoManager repositories.RepositoryManager,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.User(), logger),
		profileHandler:      NewProfileHandler(serviceManager.User(), logger),
		mentorHandler:       NewMentorHandler(serviceManager.Mentor(), logger),
		matchRequestHandler: NewMatchRequestHandler(serviceManager.MatchRequest(), logger),
		meetingHandler:      NewMeetingHandler(serviceManager.Meeting(), logger),
		authMiddleware:      NewJWTAuthMiddleware(tokenManager, userRepo),
		authRateLimiter:     NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateLimitBurst),
		repoManager:         repoManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")
	{
		// Public routes, credential endpoints are rate limited
		api.POST("/signup", hm.authRateLimiter.Middleware(), hm.authHandler.Signup)
		api.POST("/login", hm.authRateLimiter.Middleware(), hm.authHandler.Login)

		authenticated := api.Group("")
		authenticated.Use(hm.authMiddleware.AuthMiddleware())
		{
			// /profile mirrors /me for clients that read and write the
			// same path
			authenticated.GET("/me", hm.profileHandler.Me)
			authenticated.GET("/profile", hm.profileHandler.Me)
			authenticated.PUT("/profile", hm.profileHandler.UpdateProfile)

			authenticated.GET("/images/:role/:userId", hm.profileHandler.GetImage)

			authenticated.GET("/mentors", hm.mentorHandler.List)

			matchRequests := authenticated.Group("/match-requests")
			{
				matchRequests.POST("", hm.matchRequestHandler.Create)
				matchRequests.GET("/incoming", hm.matchRequestHandler.ListIncoming)
				matchRequests.GET("/outgoing", hm.matchRequestHandler.ListOutgoing)
				matchRequests.PUT("/:id/accept", hm.matchRequestHandler.Accept)
				matchRequests.PUT("/:id/reject", hm.matchRequestHandler.Reject)
				matchRequests.DELETE("/:id", hm.matchRequestHandler.Cancel)
			}

			meetings := authenticated.Group("/meetings")
			{
				meetings.POST("", hm.meetingHandler.Create)
				meetings.GET("", hm.meetingHandler.List)
				meetings.GET("/calendar/:year/:month", hm.meetingHandler.Calendar)
				meetings.GET("/export", hm.meetingHandler.Export)
				meetings.GET("/:id", hm.meetingHandler.Get)
				meetings.PUT("/:id", hm.meetingHandler.Update)
				meetings.DELETE("/:id", hm.meetingHandler.Delete)
			}
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "matching-service",
	}

	if hm.repoManager != nil {
		if err := hm.repoManager.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["error"] = err.Error()
		}
	}

	c.JSON(status, health)
}
