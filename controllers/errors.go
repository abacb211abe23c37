package controllers

import (
	"errors"
	"log"
	"net/http"

	"courtside/services/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the business-error taxonomy to HTTP statuses. Anything
// unrecognized is an infrastructure failure: logged and answered with a
// generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrInvalidFormat),
		errors.Is(err, apperrors.ErrWeakPassword),
		errors.Is(err, apperrors.ErrSamePassword),
		errors.Is(err, apperrors.ErrInvalidOrExpired),
		errors.Is(err, apperrors.ErrTooManyAttempts),
		errors.Is(err, apperrors.ErrAlreadyVerified),
		errors.Is(err, apperrors.ErrPastSchedule),
		errors.Is(err, apperrors.ErrInvalidNTRPRange),
		errors.Is(err, apperrors.ErrNotJoinable),
		errors.Is(err, apperrors.ErrSelfJoin),
		errors.Is(err, apperrors.ErrRatingTooLow),
		errors.Is(err, apperrors.ErrRatingTooHigh),
		errors.Is(err, apperrors.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrAccountLocked),
		errors.Is(err, apperrors.ErrPhoneNotVerified),
		errors.Is(err, apperrors.ErrNotOpponent),
		errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrDuplicateInvitation):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
