package postgres

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlayStyleBaseline       = "baseline"
	PlayStyleServeVolley    = "serve_volley"
	PlayStyleAllCourt       = "all_court"
	PlayStyleCounterPuncher = "counter_puncher"
)

const (
	HandednessRight = "right"
	HandednessLeft  = "left"
	HandednessBoth  = "both"
)

/*
 * 'PlayerProfile' extends a User with tennis-specific data. The
 * MatchesPlayed / MatchesWon counters are mutated only through the
 * profile service's locked increment, never read-modify-written elsewhere.
 */
type PlayerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	// NTRP rating, 1.0 (beginner) to 7.0 (pro).
	NTRPRating float64 `gorm:"type:decimal(2,1);default:2.5;index;check:valid_ntrp_rating,ntrp_rating >= 1.0 AND ntrp_rating <= 7.0"`

	PlayStyle       string `gorm:"size:20;default:all_court"`
	Handedness      string `gorm:"size:10;default:right"`
	YearsExperience int    `gorm:"default:0"`

	HeightCm *int
	WeightKg *int
	Bio      string
	City     string `gorm:"size:100;index"`

	// Aggregate stats
	MatchesPlayed int `gorm:"default:0"`
	MatchesWon    int `gorm:"default:0"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (p *PlayerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WinRate returns the win percentage rounded to one decimal.
func (p *PlayerProfile) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0.0
	}
	rate := float64(p.MatchesWon) / float64(p.MatchesPlayed) * 100
	return math.Round(rate*10) / 10
}
