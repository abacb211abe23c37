package controllers

import (
	"net/http"

	"courtside/middleware"
	"courtside/models/postgres"
	"courtside/services/auth"
	"courtside/services/token"

	"github.com/gin-gonic/gin"
)

func userResponse(u *postgres.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"phone":             u.Phone,
		"email":             u.Email,
		"first_name":        u.FirstName,
		"last_name":         u.LastName,
		"full_name":         u.FullName(),
		"is_phone_verified": u.IsPhoneVerified,
		"is_coach":          u.IsCoach,
		"created_at":        u.CreatedAt,
	}
}

func tokenResponse(pair token.Pair) gin.H {
	return gin.H{"access": pair.Access, "refresh": pair.Refresh}
}

// Register creates an unverified account and triggers the first
// verification SMS.
func Register(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone     string `json:"phone" binding:"required"`
			Password  string `json:"password" binding:"required"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := svc.Register(auth.RegisterInput{
			Phone:     req.Phone,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "verification code sent",
			"user":    userResponse(user),
		})
	}
}

// SendCode re-sends a verification code. Unknown phones get the same
// answer as known ones.
func SendCode(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone string `json:"phone" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if err := svc.SendCode(req.Phone); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
	}
}

// VerifyPhone redeems a code and logs the user in.
func VerifyPhone(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone string `json:"phone" binding:"required"`
			Code  string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, pair, err := svc.VerifyPhone(req.Phone, req.Code)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "phone verified",
			"user":    userResponse(user),
			"tokens":  tokenResponse(pair),
		})
	}
}

// Login exchanges phone and password for a token pair.
func Login(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone    string `json:"phone" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, pair, err := svc.Login(req.Phone, req.Password, c.ClientIP())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":   userResponse(user),
			"tokens": tokenResponse(pair),
		})
	}
}

// RefreshToken exchanges a refresh token for a fresh pair.
func RefreshToken(svc *auth.AuthService, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Refresh string `json:"refresh" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		claims, err := tokens.ParseRefresh(req.Refresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		// Re-read the account so deactivation or a coach-flag change since
		// issuance is reflected in the new pair.
		user, err := svc.GetUserByID(claims.UserID)
		if err != nil {
			respondError(c, err)
			return
		}

		pair, err := tokens.IssuePair(user.ID, user.Phone, user.IsCoach)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tokens": tokenResponse(pair)})
	}
}

// Me returns the authenticated account.
func Me(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := svc.GetUserByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
	}
}

// UpdateMe updates the mutable account fields.
func UpdateMe(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req struct {
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			Email     *string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := svc.GetUserByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.UpdateProfileFields(user, req.FirstName, req.LastName, req.Email); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
	}
}

// ChangePassword swaps the password after verifying the current one.
func ChangePassword(svc *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var req struct {
			OldPassword string `json:"old_password" binding:"required"`
			NewPassword string `json:"new_password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		user, err := svc.GetUserByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.ChangePassword(user, req.OldPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password changed"})
	}
}
