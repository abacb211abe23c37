package controllers

import (
	"net/http"

	"courtside/middleware"
	"courtside/models/postgres"
	"courtside/services/court"

	"github.com/gin-gonic/gin"
)

func courtResponse(ct *postgres.Court) gin.H {
	return gin.H{
		"id":             ct.ID,
		"name":           ct.Name,
		"city":           ct.City,
		"address":        ct.Address,
		"description":    ct.Description,
		"surface_type":   ct.SurfaceType,
		"indoor":         ct.Indoor,
		"has_lights":     ct.HasLights,
		"price_per_hour": ct.PricePerHour,
		"phone":          ct.Phone,
		"website":        ct.Website,
		"is_active":      ct.IsActive,
		"rating":         ct.Rating,
		"review_count":   ct.ReviewCount,
	}
}

// ListCourts returns active courts, optionally filtered by ?city=.
func ListCourts(svc *court.CourtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		courts, err := svc.ListByCity(c.Query("city"))
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(courts))
		for i := range courts {
			out = append(out, courtResponse(&courts[i]))
		}
		c.JSON(http.StatusOK, gin.H{"courts": out})
	}
}

// GetCourt returns one court by id.
func GetCourt(svc *court.CourtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		courtID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ct, err := svc.GetByID(courtID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"court": courtResponse(ct)})
	}
}

// CreateCourt adds a court to the directory.
func CreateCourt(svc *court.CourtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name         string `json:"name" binding:"required"`
			City         string `json:"city" binding:"required"`
			Address      string `json:"address"`
			Description  string `json:"description"`
			SurfaceType  string `json:"surface_type"`
			Indoor       bool   `json:"indoor"`
			HasLights    bool   `json:"has_lights"`
			PricePerHour int    `json:"price_per_hour" binding:"required"`
			Phone        string `json:"phone"`
			Website      string `json:"website"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		ct, err := svc.Create(court.CreateInput{
			Name:         req.Name,
			City:         req.City,
			Address:      req.Address,
			Description:  req.Description,
			SurfaceType:  req.SurfaceType,
			Indoor:       req.Indoor,
			HasLights:    req.HasLights,
			PricePerHour: req.PricePerHour,
			Phone:        req.Phone,
			Website:      req.Website,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"court": courtResponse(ct)})
	}
}

// CreateCourtReview adds the caller's review for a court.
func CreateCourtReview(svc *court.CourtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		courtID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		review, err := svc.CreateReview(courtID, userID, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"review": gin.H{
			"id":       review.ID,
			"court_id": review.CourtID,
			"rating":   review.Rating,
			"comment":  review.Comment,
		}})
	}
}

// UpdateCourtReview edits the caller's existing review.
func UpdateCourtReview(svc *court.CourtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		reviewID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		review, err := svc.UpdateReview(reviewID, userID, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": gin.H{
			"id":       review.ID,
			"court_id": review.CourtID,
			"rating":   review.Rating,
			"comment":  review.Comment,
		}})
	}
}
