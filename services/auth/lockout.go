package auth

import (
	"time"

	"courtside/models/postgres"
)

const (
	maxFailedLogins = 5
	lockoutWindow   = 30 * time.Minute
)

// RecordFailedLogin increments the failure counter and, at the threshold,
// opens a lockout window. Both fields are persisted together.
func (s *AuthService) RecordFailedLogin(user *postgres.User) error {
	user.FailedLoginAttempts++
	if user.FailedLoginAttempts >= maxFailedLogins {
		until := time.Now().Add(lockoutWindow)
		user.LockedUntil = &until
	}
	return s.DB.Model(user).
		Select("failed_login_attempts", "locked_until").
		Updates(map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"locked_until":          user.LockedUntil,
		}).Error
}

// RecordSuccessfulLogin resets the failure counter, clears any lockout and
// records the caller IP when known.
func (s *AuthService) RecordSuccessfulLogin(user *postgres.User, ip string) error {
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	updates := map[string]interface{}{
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}
	if ip != "" {
		user.LastLoginIP = &ip
		updates["last_login_ip"] = ip
	}
	return s.DB.Model(user).Updates(updates).Error
}
