package routes

import (
	"net/http"

	"courtside/controllers"
	"courtside/middleware"
	"courtside/services/auth"
	"courtside/services/court"
	"courtside/services/match"
	"courtside/services/profile"
	"courtside/services/redis"
	"courtside/services/sms"
	"courtside/services/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes builds the service graph and configures all API routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient, dispatcher *sms.Dispatcher) {
	tokens := token.NewService()
	authService := auth.NewAuthService(db, redisClient, dispatcher, tokens)
	profileService := profile.NewProfileService(db)
	matchService := match.NewMatchService(db, profileService)
	courtService := court.NewCourtService(db)

	api := router.Group("/")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", controllers.Register(authService))
		authGroup.POST("/send-code", controllers.SendCode(authService))
		authGroup.POST("/verify-phone", controllers.VerifyPhone(authService))
		authGroup.POST("/login", controllers.Login(authService))
		authGroup.POST("/refresh", controllers.RefreshToken(authService, tokens))
	}

	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired(tokens))
	{
		account := authenticated.Group("/account")
		{
			account.GET("/me", controllers.Me(authService))
			account.PATCH("/me", controllers.UpdateMe(authService))
			account.POST("/change-password", controllers.ChangePassword(authService))
		}

		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/player/me", controllers.GetMyPlayerProfile(profileService))
			profiles.POST("/player", controllers.CreatePlayerProfile(profileService))
			profiles.PATCH("/player/me", controllers.UpdatePlayerProfile(profileService))
			profiles.GET("/player/:id", controllers.GetPlayerProfile(profileService))

			profiles.GET("/coach/me", controllers.GetMyCoachProfile(profileService))
			profiles.POST("/coach", controllers.CreateCoachProfile(profileService, authService))
			profiles.PATCH("/coach/me", controllers.UpdateCoachProfile(profileService))
		}

		matches := authenticated.Group("/matches")
		{
			matches.POST("", controllers.CreateMatch(matchService))
			matches.GET("/mine", controllers.ListMyMatches(matchService))
			matches.GET("/available", controllers.ListAvailableMatches(matchService))
			matches.GET("/:id", controllers.GetMatch(matchService))
			matches.PATCH("/:id", controllers.UpdateMatch(matchService))
			matches.POST("/:id/join", controllers.JoinMatch(matchService))
			matches.POST("/:id/leave", controllers.LeaveMatch(matchService))
			matches.POST("/:id/cancel", controllers.CancelMatch(matchService))
			matches.POST("/:id/score", controllers.RecordScore(matchService))
			matches.POST("/:id/invite", controllers.InvitePlayer(matchService))
		}

		invitations := authenticated.Group("/invitations")
		{
			invitations.GET("", controllers.ListMyInvitations(matchService))
			invitations.POST("/:id/respond", controllers.RespondToInvitation(matchService))
		}

		courts := authenticated.Group("/courts")
		{
			courts.GET("", controllers.ListCourts(courtService))
			courts.GET("/:id", controllers.GetCourt(courtService))
			courts.POST("", controllers.CreateCourt(courtService))
			courts.POST("/:id/reviews", controllers.CreateCourtReview(courtService))
			courts.PATCH("/reviews/:id", controllers.UpdateCourtReview(courtService))
		}
	}
}
