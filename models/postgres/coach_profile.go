package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'CoachProfile' extends a User offering coaching. Creating one flips
 * User.IsCoach in the same transaction (see services/profile).
 */
type CoachProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	IsVerified bool `gorm:"default:false;index"`

	Certification   string `gorm:"size:255"`
	YearsExperience int    `gorm:"default:0"`

	// Hourly rate in Toman.
	HourlyRate *int `gorm:"index"`

	Specialties   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	AvailableDays datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	Bio  string
	City string `gorm:"size:100;index"`

	TotalStudents int     `gorm:"default:0"`
	Rating        float64 `gorm:"type:decimal(2,1);default:0.0"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (c *CoachProfile) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
