package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'VerificationCode' is a one-time SMS credential proving phone ownership.
 * Rows are never deleted; used/expired codes are kept for audit.
 */
type VerificationCode struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Phone     string     `gorm:"size:13;not null;index:idx_verification_codes_active,priority:1"`
	Code      string     `gorm:"size:6;not null"`
	IsUsed    bool       `gorm:"default:false;index:idx_verification_codes_active,priority:2"`
	ExpiresAt time.Time  `gorm:"not null;index:idx_verification_codes_active,priority:3"`
	UsedAt    *time.Time

	// Failed verify attempts against this code. The code is burned
	// (marked used) once this reaches 3.
	AttemptCount int `gorm:"default:0"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time
}

func (v *VerificationCode) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the code is past its 5-minute window.
func (v *VerificationCode) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}

// IsValid reports whether the code can still be redeemed.
func (v *VerificationCode) IsValid() bool {
	return !v.IsUsed && !v.IsExpired()
}
