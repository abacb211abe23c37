package match

import (
	"errors"
	"time"

	"courtside/models/postgres"
	"courtside/services/apperrors"
	"courtside/services/profile"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchService owns the match state machine. Every transition re-reads the
// match row FOR UPDATE inside the mutating transaction, so two concurrent
// calls cannot both act on a stale "opponent is none" read.
type MatchService struct {
	DB       *gorm.DB
	Profiles *profile.ProfileService
}

func NewMatchService(db *gorm.DB, profiles *profile.ProfileService) *MatchService {
	return &MatchService{DB: db, Profiles: profiles}
}

// lockMatch loads the match row FOR UPDATE inside tx.
func lockMatch(tx *gorm.DB, matchID uuid.UUID) (*postgres.Match, error) {
	var m postgres.Match
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
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

// CreateInput carries the fields accepted at match creation.
type CreateInput struct {
	ScheduledAt     time.Time
	Title           string
	Description     string
	CourtID         *uuid.UUID
	CourtName       string
	MatchType       string
	DurationMinutes int
	NTRPMin         *float64
	NTRPMax         *float64
	IsPublic        bool
}

// Create produces a pending, opponent-less match owned by the organizer.
func (s *MatchService) Create(organizerID uuid.UUID, in CreateInput) (*postgres.Match, error) {
	if !in.ScheduledAt.After(time.Now()) {
		return nil, apperrors.ErrPastSchedule
	}
	if in.NTRPMin != nil && in.NTRPMax != nil && *in.NTRPMin > *in.NTRPMax {
		return nil, apperrors.ErrInvalidNTRPRange
	}

	m := postgres.Match{
		OrganizerID:     organizerID,
		ScheduledAt:     in.ScheduledAt,
		Title:           in.Title,
		Description:     in.Description,
		CourtID:         in.CourtID,
		CourtName:       in.CourtName,
		MatchType:       in.MatchType,
		DurationMinutes: in.DurationMinutes,
		NTRPMin:         in.NTRPMin,
		NTRPMax:         in.NTRPMax,
		IsPublic:        in.IsPublic,
		Status:          postgres.MatchStatusPending,
	}
	if m.MatchType == "" {
		m.MatchType = postgres.MatchTypeSingles
	}
	if m.DurationMinutes == 0 {
		m.DurationMinutes = 90
	}

	if err := s.DB.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Join sets the caller as opponent and confirms the match. The eligibility
// predicate (pending, opponent-less, public, future) and the NTRP gate are
// evaluated against the locked row.
func (s *MatchService) Join(matchID, userID uuid.UUID) (*postgres.Match, error) {
	var joined *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if err := s.joinLocked(tx, m, userID); err != nil {
			return err
		}
		joined = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// joinLocked applies the join transition to an already-locked match. Also
// used by invitation acceptance, inside the same transaction.
func (s *MatchService) joinLocked(tx *gorm.DB, m *postgres.Match, userID uuid.UUID) error {
	if !m.CanJoin(time.Now()) {
		return apperrors.ErrNotJoinable
	}
	if m.OrganizerID == userID {
		return apperrors.ErrSelfJoin
	}

	if m.NTRPMin != nil || m.NTRPMax != nil {
		var p postgres.PlayerProfile
		err := tx.Where("user_id = ?", userID).First(&p).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// Users without a rating pass the gate.
		if err == nil {
			if m.NTRPMin != nil && p.NTRPRating < *m.NTRPMin {
				return apperrors.ErrRatingTooLow
			}
			if m.NTRPMax != nil && p.NTRPRating > *m.NTRPMax {
				return apperrors.ErrRatingTooHigh
			}
		}
	}

	m.OpponentID = &userID
	m.Status = postgres.MatchStatusConfirmed
	return tx.Model(m).
		Select("opponent_id", "status").
		Updates(map[string]interface{}{
			"opponent_id": userID,
			"status":      postgres.MatchStatusConfirmed,
		}).Error
}

// Leave removes the current opponent and reverts the match to pending.
func (s *MatchService) Leave(matchID, userID uuid.UUID) (*postgres.Match, error) {
	var left *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if m.OpponentID == nil || *m.OpponentID != userID {
			return apperrors.ErrNotOpponent
		}
		if m.Status != postgres.MatchStatusPending && m.Status != postgres.MatchStatusConfirmed {
			return apperrors.ErrInvalidState
		}

		m.OpponentID = nil
		m.Status = postgres.MatchStatusPending
		if err := tx.Model(m).
			Select("opponent_id", "status").
			Updates(map[string]interface{}{
				"opponent_id": nil,
				"status":      postgres.MatchStatusPending,
			}).Error; err != nil {
			return err
		}
		left = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return left, nil
}

// Cancel moves a non-terminal match to cancelled, recording actor and
// reason. Only participants may cancel.
func (s *MatchService) Cancel(matchID, userID uuid.UUID, reason string) (*postgres.Match, error) {
	var cancelled *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if !m.IsParticipant(userID) {
			return apperrors.ErrPermissionDenied
		}
		if m.IsTerminal() {
			return apperrors.ErrInvalidState
		}

		m.Status = postgres.MatchStatusCancelled
		m.CancelledByID = &userID
		m.CancellationReason = reason
		if err := tx.Model(m).
			Select("status", "cancelled_by_id", "cancellation_reason").
			Updates(map[string]interface{}{
				"status":              postgres.MatchStatusCancelled,
				"cancelled_by_id":     userID,
				"cancellation_reason": reason,
			}).Error; err != nil {
			return err
		}
		cancelled = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Update applies organizer edits while the match is still pending or
// confirmed. Rescheduling into the past is rejected.
func (s *MatchService) Update(matchID, userID uuid.UUID, updates map[string]interface{}) (*postgres.Match, error) {
	allowed := map[string]bool{
		"title": true, "description": true, "scheduled_at": true,
		"court_id": true, "court_name": true, "ntrp_min": true,
		"ntrp_max": true, "is_public": true, "duration_minutes": true,
	}

	var updated *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if m.OrganizerID != userID {
			return apperrors.ErrPermissionDenied
		}
		if m.Status != postgres.MatchStatusPending && m.Status != postgres.MatchStatusConfirmed {
			return apperrors.ErrInvalidState
		}

		filtered := map[string]interface{}{}
		for k, v := range updates {
			if allowed[k] {
				filtered[k] = v
			}
		}
		// scheduled_at arrives as time.Time from Go callers and as an
		// RFC3339 string from JSON bodies.
		switch when := filtered["scheduled_at"].(type) {
		case time.Time:
			if !when.After(time.Now()) {
				return apperrors.ErrPastSchedule
			}
		case string:
			parsed, err := time.Parse(time.RFC3339, when)
			if err != nil {
				return apperrors.ErrInvalidFormat
			}
			if !parsed.After(time.Now()) {
				return apperrors.ErrPastSchedule
			}
			filtered["scheduled_at"] = parsed
		}
		if len(filtered) > 0 {
			if err := tx.Model(m).Updates(filtered).Error; err != nil {
				return err
			}
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
