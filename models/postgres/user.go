package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'User' is the identity anchor of the platform. The normalized Iranian
 * phone number is the login identifier. It is referenced by Match,
 * MatchInvitation, PlayerProfile, CoachProfile and CourtReview.
 */
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone        string    `gorm:"size:13;not null;uniqueIndex;check:valid_phone_format,phone ~ '^0?9\\d{9}$'"`
	Email        string    `gorm:"size:100;index"`
	PasswordHash string    `gorm:"size:255;not null"`

	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`

	// Status flags
	IsPhoneVerified bool `gorm:"default:false;index:idx_users_phone_verified"`
	IsActive        bool `gorm:"default:true"`
	IsCoach         bool `gorm:"default:false;index"`

	// Security tracking
	LastLoginIP         *string    `gorm:"size:45"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns the display name, falling back to the phone number.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Phone
	}
	return name
}

// IsLocked reports whether the account is inside an active lockout window.
// The lockout is a passive timeout: nothing clears LockedUntil, it simply
// stops mattering once the deadline passes.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && u.LockedUntil.After(time.Now())
}
