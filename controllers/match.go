package controllers

import (
	"net/http"
	"time"

	"courtside/middleware"
	"courtside/models/postgres"
	"courtside/services/match"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func matchResponse(m *postgres.Match) gin.H {
	resp := gin.H{
		"id":               m.ID,
		"organizer_id":     m.OrganizerID,
		"opponent_id":      m.OpponentID,
		"title":            m.Title,
		"description":      m.Description,
		"match_type":       m.MatchType,
		"scheduled_at":     m.ScheduledAt,
		"duration_minutes": m.DurationMinutes,
		"court_id":         m.CourtID,
		"court_name":       m.CourtName,
		"status":           m.Status,
		"is_public":        m.IsPublic,
		"ntrp_min":         m.NTRPMin,
		"ntrp_max":         m.NTRPMax,
		"created_at":       m.CreatedAt,
	}
	if m.Status == postgres.MatchStatusCompleted {
		resp["organizer_score"] = m.OrganizerScore
		resp["opponent_score"] = m.OpponentScore
		resp["set_scores"] = m.SetScores
		resp["winner_id"] = m.WinnerID
	}
	if m.Status == postgres.MatchStatusCancelled {
		resp["cancelled_by_id"] = m.CancelledByID
		resp["cancellation_reason"] = m.CancellationReason
	}
	return resp
}

func matchListResponse(matches []postgres.Match) []gin.H {
	out := make([]gin.H, 0, len(matches))
	for i := range matches {
		out = append(out, matchResponse(&matches[i]))
	}
	return out
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// CreateMatch opens a new pending match owned by the caller.
func CreateMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req struct {
			Title           string     `json:"title"`
			Description     string     `json:"description"`
			MatchType       string     `json:"match_type"`
			ScheduledAt     time.Time  `json:"scheduled_at" binding:"required"`
			DurationMinutes int        `json:"duration_minutes"`
			CourtID         *uuid.UUID `json:"court_id"`
			CourtName       string     `json:"court_name"`
			NTRPMin         *float64   `json:"ntrp_min"`
			NTRPMax         *float64   `json:"ntrp_max"`
			IsPublic        *bool      `json:"is_public"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		isPublic := true
		if req.IsPublic != nil {
			isPublic = *req.IsPublic
		}

		m, err := svc.Create(userID, match.CreateInput{
			Title:           req.Title,
			Description:     req.Description,
			MatchType:       req.MatchType,
			ScheduledAt:     req.ScheduledAt,
			DurationMinutes: req.DurationMinutes,
			CourtID:         req.CourtID,
			CourtName:       req.CourtName,
			NTRPMin:         req.NTRPMin,
			NTRPMax:         req.NTRPMax,
			IsPublic:        isPublic,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"match": matchResponse(m)})
	}
}

// GetMatch returns one match by id.
func GetMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		m, err := svc.GetByID(matchID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// ListMyMatches returns the caller's matches, optionally filtered by
// status and upcoming/past.
func ListMyMatches(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		matches, err := svc.ListForUser(userID, match.ListFilter{
			Status:   c.Query("status"),
			Upcoming: c.Query("when") == "upcoming",
			Past:     c.Query("when") == "past",
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": matchListResponse(matches)})
	}
}

// ListAvailableMatches returns joinable public matches.
func ListAvailableMatches(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		matches, err := svc.ListAvailable(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"matches": matchListResponse(matches)})
	}
}

// JoinMatch claims the opponent slot of an open match.
func JoinMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		m, err := svc.Join(matchID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// LeaveMatch vacates the opponent slot, reopening the match.
func LeaveMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		m, err := svc.Leave(matchID, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// CancelMatch cancels a non-terminal match the caller participates in.
func CancelMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			Reason string `json:"reason"`
		}
		// Body is optional for cancellation.
		_ = c.ShouldBindJSON(&req)

		m, err := svc.Cancel(matchID, userID, req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// UpdateMatch lets the organizer edit a match that has not started.
func UpdateMatch(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		m, err := svc.Update(matchID, userID, updates)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// RecordScore submits the final score of a confirmed match.
func RecordScore(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			OrganizerScore *int    `json:"organizer_score" binding:"required"`
			OpponentScore  *int    `json:"opponent_score" binding:"required"`
			SetScores      [][]int `json:"set_scores"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if *req.OrganizerScore < 0 || *req.OpponentScore < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scores must be non-negative"})
			return
		}

		m, err := svc.RecordScore(matchID, userID, *req.OrganizerScore, *req.OpponentScore, req.SetScores)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"match": matchResponse(m)})
	}
}

// InvitePlayer invites a specific player to a match.
func InvitePlayer(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		matchID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			InvitedUserID uuid.UUID `json:"invited_user_id" binding:"required"`
			Message       string    `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		inv, err := svc.Invite(matchID, userID, req.InvitedUserID, req.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"invitation": gin.H{
			"id":              inv.ID,
			"match_id":        inv.MatchID,
			"invited_user_id": inv.InvitedUserID,
			"status":          inv.Status,
			"message":         inv.Message,
			"created_at":      inv.CreatedAt,
		}})
	}
}

// ListMyInvitations returns the caller's pending invitations.
func ListMyInvitations(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		invitations, err := svc.PendingInvitationsForUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(invitations))
		for i := range invitations {
			inv := &invitations[i]
			entry := gin.H{
				"id":         inv.ID,
				"match_id":   inv.MatchID,
				"status":     inv.Status,
				"message":    inv.Message,
				"created_at": inv.CreatedAt,
			}
			if inv.Match.ID != uuid.Nil {
				entry["match"] = matchResponse(&inv.Match)
			}
			out = append(out, entry)
		}
		c.JSON(http.StatusOK, gin.H{"invitations": out})
	}
}

// RespondToInvitation accepts or declines an invitation. Accepting joins
// the match.
func RespondToInvitation(svc *match.MatchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		invitationID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req struct {
			Accept *bool `json:"accept" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		m, err := svc.RespondToInvitation(invitationID, userID, *req.Accept)
		if err != nil {
			respondError(c, err)
			return
		}

		if !*req.Accept {
			c.JSON(http.StatusOK, gin.H{"message": "invitation declined"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "invitation accepted", "match": matchResponse(m)})
	}
}
