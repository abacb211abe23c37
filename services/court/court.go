package court

import (
	"errors"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourtService owns the court directory and its reviews. The denormalized
// rating aggregate is recalculated explicitly by this service, never by a
// save hook, so the "who updates the aggregate and when" contract stays
// visible and testable.
type CourtService struct {
	DB *gorm.DB
}

func NewCourtService(db *gorm.DB) *CourtService {
	return &CourtService{DB: db}
}

// CreateInput carries the fields accepted at court creation.
type CreateInput struct {
	Name         string
	City         string
	Address      string
	Description  string
	SurfaceType  string
	Indoor       bool
	HasLights    bool
	PricePerHour int
	Phone        string
	Website      string
}

// Create adds a court to the directory. Price must be positive.
func (s *CourtService) Create(in CreateInput) (*postgres.Court, error) {
	if in.PricePerHour <= 0 {
		return nil, apperrors.ErrInvalidFormat
	}

	c := postgres.Court{
		Name:         in.Name,
		City:         in.City,
		Address:      in.Address,
		Description:  in.Description,
		SurfaceType:  in.SurfaceType,
		Indoor:       in.Indoor,
		HasLights:    in.HasLights,
		PricePerHour: in.PricePerHour,
		Phone:        in.Phone,
		Website:      in.Website,
		IsActive:     true,
	}
	if c.SurfaceType == "" {
		c.SurfaceType = postgres.SurfaceHard
	}

	if err := s.DB.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns a court.
func (s *CourtService) GetByID(courtID uuid.UUID) (*postgres.Court, error) {
	var c postgres.Court
	if err := s.DB.Where("id = ?", courtID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByCity returns active courts, optionally filtered by city.
func (s *CourtService) ListByCity(city string) ([]postgres.Court, error) {
	q := s.DB.Where("is_active = ?", true)
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	var courts []postgres.Court
	err := q.Order("name ASC").Find(&courts).Error
	return courts, err
}

// Update applies a partial update to the mutable court fields.
func (s *CourtService) Update(c *postgres.Court, updates map[string]interface{}) error {
	allowed := map[string]bool{
		"name": true, "description": true, "city": true, "address": true,
		"surface_type": true, "indoor": true, "has_lights": true,
		"price_per_hour": true, "phone": true, "website": true,
		"is_active": true,
	}
	filtered := map[string]interface{}{}
	for k, v := range updates {
		if allowed[k] {
			filtered[k] = v
		}
	}
	if price, ok := filtered["price_per_hour"].(int); ok && price <= 0 {
		return apperrors.ErrInvalidFormat
	}
	if len(filtered) == 0 {
		return nil
	}
	return s.DB.Model(c).Updates(filtered).Error
}

// CreateReview adds a one-per-user review and recalculates the court's
// aggregate rating inside the same transaction.
func (s *CourtService) CreateReview(courtID, userID uuid.UUID, rating int, comment string) (*postgres.CourtReview, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidFormat
	}

	var review *postgres.CourtReview
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&postgres.CourtReview{}).
			Where("court_id = ? AND user_id = ?", courtID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.ErrAlreadyExists
		}

		r := postgres.CourtReview{
			CourtID: courtID,
			UserID:  userID,
			Rating:  rating,
			Comment: comment,
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		review = &r
		return s.recalculateRating(tx, courtID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview changes a review's rating or comment and refreshes the
// aggregate.
func (s *CourtService) UpdateReview(reviewID, userID uuid.UUID, rating int, comment string) (*postgres.CourtReview, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.ErrInvalidFormat
	}

	var review postgres.CourtReview
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", reviewID).
			First(&review).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}
		if review.UserID != userID {
			return apperrors.ErrPermissionDenied
		}

		if err := tx.Model(&review).
			Select("rating", "comment").
			Updates(map[string]interface{}{"rating": rating, "comment": comment}).Error; err != nil {
			return err
		}
		return s.recalculateRating(tx, review.CourtID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// recalculateRating recomputes the court's average rating and review count
// under a row lock, preventing lost updates from concurrent reviews.
func (s *CourtService) recalculateRating(tx *gorm.DB, courtID uuid.UUID) error {
	var c postgres.Court
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", courtID).
		First(&c).Error; err != nil {
		return err
	}

	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&postgres.CourtReview{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("court_id = ?", courtID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&c).
		Select("rating", "review_count").
		Updates(map[string]interface{}{
			"rating":       agg.Avg,
			"review_count": agg.Count,
		}).Error
}
