package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	codeTTL           = 5 * time.Minute
	maxVerifyAttempts = 3
)

// generateCode returns a random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IssueCode invalidates every prior unused code for the phone and creates a
// fresh one, in a single transaction so no two unused codes ever coexist.
// Fails with ErrRateLimited while the 60-second cooldown marker is set.
func (s *AuthService) IssueCode(phone string) (string, error) {
	if s.Redis != nil && s.Redis.SMSCooldownActive(phone) {
		return "", apperrors.ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	verification := postgres.VerificationCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&postgres.VerificationCode{}).
			Where("phone = ? AND is_used = ?", phone, false).
			Update("is_used", true).Error; err != nil {
			return err
		}
		return tx.Create(&verification).Error
	})
	if err != nil {
		return "", err
	}

	if s.Redis != nil {
		s.Redis.MarkSMSCooldown(phone)
	}
	return code, nil
}

// errCodeMismatch never leaves this package; callers see ErrInvalidOrExpired.
var errCodeMismatch = errors.New("verification code mismatch")

// redeemCode consumes the active code for the phone and flips the account's
// verified flag in the same transaction. Wrong guesses count against the
// active code; once the counter reaches the limit the code is burned and
// even the right value is refused.
func (s *AuthService) redeemCode(phone, code string) (*postgres.User, error) {
	now := time.Now()

	var user postgres.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var verification postgres.VerificationCode
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("phone = ? AND is_used = ? AND expires_at > ?", phone, false, now).
			First(&verification).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInvalidOrExpired
			}
			return err
		}

		if verification.AttemptCount >= maxVerifyAttempts {
			return apperrors.ErrTooManyAttempts
		}
		if verification.Code != code {
			return errCodeMismatch
		}

		usedAt := time.Now()
		if err := tx.Model(&verification).
			Updates(map[string]interface{}{"is_used": true, "used_at": usedAt}).Error; err != nil {
			return err
		}

		if err := tx.Where("phone = ?", phone).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		return tx.Model(&user).Update("is_phone_verified", true).Error
	})

	// Business errors roll the transaction back, so the bookkeeping writes
	// that must survive a failed attempt happen here.
	switch {
	case errors.Is(err, errCodeMismatch):
		s.DB.Model(&postgres.VerificationCode{}).
			Where("phone = ? AND is_used = ?", phone, false).
			Update("attempt_count", gorm.Expr("attempt_count + 1"))
		return nil, apperrors.ErrInvalidOrExpired
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		// Burn the code permanently even though it never verified.
		s.DB.Model(&postgres.VerificationCode{}).
			Where("phone = ? AND is_used = ?", phone, false).
			Update("is_used", true)
		return nil, err
	case err != nil:
		return nil, err
	}

	user.IsPhoneVerified = true
	return &user, nil
}
