package match

import (
	"errors"
	"time"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetByID returns a match with its participants preloaded.
func (s *MatchService) GetByID(matchID uuid.UUID) (*postgres.Match, error) {
	var m postgres.Match
	err := s.DB.Preload("Organizer").Preload("Opponent").Preload("Court").
		Where("id = ?", matchID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListFilter narrows ListForUser results.
type ListFilter struct {
	Status   string
	Upcoming bool
	Past     bool
}

// ListForUser returns matches where the user is organizer or opponent,
// newest scheduled first.
func (s *MatchService) ListForUser(userID uuid.UUID, f ListFilter) ([]postgres.Match, error) {
	q := s.DB.Preload("Organizer").Preload("Opponent").
		Where("organizer_id = ? OR opponent_id = ?", userID, userID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Upcoming {
		q = q.Where("scheduled_at > ?", time.Now())
	}
	if f.Past {
		q = q.Where("scheduled_at <= ?", time.Now())
	}

	var matches []postgres.Match
	err := q.Order("scheduled_at DESC").Find(&matches).Error
	return matches, err
}

// ListAvailable returns public pending opponent-less future matches the
// user could join, excluding their own, soonest first.
func (s *MatchService) ListAvailable(userID uuid.UUID) ([]postgres.Match, error) {
	var matches []postgres.Match
	err := s.DB.Preload("Organizer").Preload("Court").
		Where("status = ? AND is_public = ? AND opponent_id IS NULL AND scheduled_at > ? AND organizer_id <> ?",
			postgres.MatchStatusPending, true, time.Now(), userID).
		Order("scheduled_at ASC").
		Find(&matches).Error
	return matches, err
}

// PendingInvitationsForUser returns the user's unresolved invitations.
func (s *MatchService) PendingInvitationsForUser(userID uuid.UUID) ([]postgres.MatchInvitation, error) {
	var invitations []postgres.MatchInvitation
	err := s.DB.Preload("Match").Preload("Match.Organizer").Preload("InvitedBy").
		Where("invited_user_id = ? AND status = ?", userID, postgres.InvitationStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error
	return invitations, err
}
