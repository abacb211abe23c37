package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SurfaceHard   = "hard"
	SurfaceClay   = "clay"
	SurfaceGrass  = "grass"
	SurfaceCarpet = "carpet"
)

/*
 * 'Court' is a directory entry for a tennis court. Rating and ReviewCount
 * are denormalized aggregates recalculated by the court service under a
 * row lock whenever a review changes.
 */
type Court struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"size:255;not null"`
	City    string `gorm:"size:100;not null;index"`
	Address string `gorm:"size:500;not null"`

	Description string
	SurfaceType string `gorm:"size:20;default:hard"`
	Indoor      bool   `gorm:"default:false"`
	HasLights   bool   `gorm:"default:false"`

	// Price per hour in Toman, always positive.
	PricePerHour int `gorm:"not null;check:positive_price,price_per_hour > 0"`

	Phone   string `gorm:"size:20"`
	Website string `gorm:"size:255"`

	IsActive bool `gorm:"default:true;index"`

	// Denormalized review aggregates
	Rating      float64 `gorm:"type:decimal(2,1);default:0.0"`
	ReviewCount int     `gorm:"default:0"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time
}

func (c *Court) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

/*
 * 'CourtReview' is a 1-5 star review; one per (court, user).
 */
type CourtReview struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourtID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_court_reviews_court_user,priority:1"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_court_reviews_court_user,priority:2"`

	Rating  int    `gorm:"not null;check:valid_review_rating,rating >= 1 AND rating <= 5"`
	Comment string

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	Court Court `gorm:"foreignKey:CourtID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (r *CourtReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
