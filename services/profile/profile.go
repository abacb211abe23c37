package profile

import (
	"errors"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService owns player and coach profiles, including the aggregate
// match counters consumed by score recording.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetPlayerByUser returns the player profile for a user, or nil when the
// user has none. Absence is not an error.
func (s *ProfileService) GetPlayerByUser(userID uuid.UUID) (*postgres.PlayerProfile, error) {
	var p postgres.PlayerProfile
	if err := s.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// PlayerInput carries the optional fields accepted at profile creation.
type PlayerInput struct {
	NTRPRating      float64
	PlayStyle       string
	Handedness      string
	YearsExperience int
	City            string
	Bio             string
}

// CreatePlayer creates a player profile for a user that has none yet.
func (s *ProfileService) CreatePlayer(userID uuid.UUID, in PlayerInput) (*postgres.PlayerProfile, error) {
	existing, err := s.GetPlayerByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyExists
	}

	p := postgres.PlayerProfile{
		UserID:          userID,
		NTRPRating:      in.NTRPRating,
		PlayStyle:       in.PlayStyle,
		Handedness:      in.Handedness,
		YearsExperience: in.YearsExperience,
		City:            in.City,
		Bio:             in.Bio,
	}
	if p.NTRPRating == 0 {
		p.NTRPRating = 2.5
	}
	if p.PlayStyle == "" {
		p.PlayStyle = postgres.PlayStyleAllCourt
	}
	if p.Handedness == "" {
		p.Handedness = postgres.HandednessRight
	}

	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlayer applies a partial update to the mutable player fields.
func (s *ProfileService) UpdatePlayer(p *postgres.PlayerProfile, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"ntrp_rating": true, "play_style": true, "handedness": true,
		"years_experience": true, "height_cm": true, "weight_kg": true,
		"bio": true, "city": true,
	}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return s.DB.Model(p).Updates(filtered).Error
}

// IncrementStatsAfterMatch bumps the aggregate counters for a completed
// match. The row is re-read FOR UPDATE inside the transaction so two
// matches completing at once for the same player cannot lose an update.
// Runs inside the caller's transaction when tx is the scoring transaction.
func (s *ProfileService) IncrementStatsAfterMatch(tx *gorm.DB, profileID uuid.UUID, won bool) error {
	var p postgres.PlayerProfile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", profileID).
		First(&p).Error; err != nil {
		return err
	}

	p.MatchesPlayed++
	if won {
		p.MatchesWon++
	}
	return tx.Model(&p).
		Select("matches_played", "matches_won").
		Updates(map[string]interface{}{
			"matches_played": p.MatchesPlayed,
			"matches_won":    p.MatchesWon,
		}).Error
}

// GetCoachByUser returns the coach profile for a user, or nil.
func (s *ProfileService) GetCoachByUser(userID uuid.UUID) (*postgres.CoachProfile, error) {
	var c postgres.CoachProfile
	if err := s.DB.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CoachInput carries the fields accepted at coach profile creation.
type CoachInput struct {
	Certification   string
	YearsExperience int
	HourlyRate      *int
	City            string
	Bio             string
}

// CreateCoach creates a coach profile and flips the account's coach flag
// in the same transaction.
func (s *ProfileService) CreateCoach(user *postgres.User, in CoachInput) (*postgres.CoachProfile, error) {
	existing, err := s.GetCoachByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAlreadyExists
	}

	c := postgres.CoachProfile{
		UserID:          user.ID,
		Certification:   in.Certification,
		YearsExperience: in.YearsExperience,
		HourlyRate:      in.HourlyRate,
		City:            in.City,
		Bio:             in.Bio,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("is_coach", true).Error; err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		return nil, err
	}
	user.IsCoach = true
	return &c, nil
}

// UpdateCoach applies a partial update to the mutable coach fields.
func (s *ProfileService) UpdateCoach(c *postgres.CoachProfile, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"certification": true, "years_experience": true, "hourly_rate": true,
		"specialties": true, "bio": true, "city": true, "available_days": true,
	}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return s.DB.Model(c).Updates(filtered).Error
}
