package controllers

import (
	"net/http"

	"courtside/middleware"
	"courtside/models/postgres"
	"courtside/services/auth"
	"courtside/services/profile"

	"github.com/gin-gonic/gin"
)

func playerResponse(p *postgres.PlayerProfile) gin.H {
	return gin.H{
		"id":               p.ID,
		"user_id":          p.UserID,
		"ntrp_rating":      p.NTRPRating,
		"play_style":       p.PlayStyle,
		"handedness":       p.Handedness,
		"years_experience": p.YearsExperience,
		"height_cm":        p.HeightCm,
		"weight_kg":        p.WeightKg,
		"bio":              p.Bio,
		"city":             p.City,
		"matches_played":   p.MatchesPlayed,
		"matches_won":      p.MatchesWon,
		"win_rate":         p.WinRate(),
	}
}

func coachResponse(c *postgres.CoachProfile) gin.H {
	return gin.H{
		"id":               c.ID,
		"user_id":          c.UserID,
		"is_verified":      c.IsVerified,
		"certification":    c.Certification,
		"years_experience": c.YearsExperience,
		"hourly_rate":      c.HourlyRate,
		"specialties":      c.Specialties,
		"available_days":   c.AvailableDays,
		"bio":              c.Bio,
		"city":             c.City,
		"total_students":   c.TotalStudents,
		"rating":           c.Rating,
	}
}

// GetMyPlayerProfile returns the caller's player profile.
func GetMyPlayerProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		p, err := svc.GetPlayerByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no player profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": playerResponse(p)})
	}
}

// GetPlayerProfile returns another user's player profile.
func GetPlayerProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		p, err := svc.GetPlayerByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no player profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": playerResponse(p)})
	}
}

// CreatePlayerProfile creates the caller's player profile.
func CreatePlayerProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req struct {
			NTRPRating      float64 `json:"ntrp_rating"`
			PlayStyle       string  `json:"play_style"`
			Handedness      string  `json:"handedness"`
			YearsExperience int     `json:"years_experience"`
			City            string  `json:"city"`
			Bio             string  `json:"bio"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		p, err := svc.CreatePlayer(userID, profile.PlayerInput{
			NTRPRating:      req.NTRPRating,
			PlayStyle:       req.PlayStyle,
			Handedness:      req.Handedness,
			YearsExperience: req.YearsExperience,
			City:            req.City,
			Bio:             req.Bio,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"profile": playerResponse(p)})
	}
}

// UpdatePlayerProfile applies a partial update to the caller's player
// profile.
func UpdatePlayerProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		p, err := svc.GetPlayerByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no player profile"})
			return
		}
		if err := svc.UpdatePlayer(p, updates); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": playerResponse(p)})
	}
}

// GetMyCoachProfile returns the caller's coach profile.
func GetMyCoachProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		p, err := svc.GetCoachByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no coach profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": coachResponse(p)})
	}
}

// CreateCoachProfile creates the caller's coach profile and marks the
// account as a coach.
func CreateCoachProfile(profiles *profile.ProfileService, accounts *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req struct {
			Certification   string `json:"certification"`
			YearsExperience int    `json:"years_experience"`
			HourlyRate      *int   `json:"hourly_rate"`
			City            string `json:"city"`
			Bio             string `json:"bio"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := accounts.GetUserByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}

		p, err := profiles.CreateCoach(user, profile.CoachInput{
			Certification:   req.Certification,
			YearsExperience: req.YearsExperience,
			HourlyRate:      req.HourlyRate,
			City:            req.City,
			Bio:             req.Bio,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"profile": coachResponse(p)})
	}
}

// UpdateCoachProfile applies a partial update to the caller's coach
// profile.
func UpdateCoachProfile(svc *profile.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		p, err := svc.GetCoachByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no coach profile"})
			return
		}
		if err := svc.UpdateCoach(p, updates); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": coachResponse(p)})
	}
}
