package match

import (
	"encoding/json"
	"errors"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordScore stores a confirmed match's final score, determines the
// winner, marks the match completed and bumps both participants' aggregate
// stats in one transaction, so a partially-applied result is never
// observable. Equal scores complete the match with no winner (a tie).
func (s *MatchService) RecordScore(
	matchID, userID uuid.UUID,
	organizerScore, opponentScore int,
	setScores [][]int,
) (*postgres.Match, error) {
	var recorded *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if !m.IsParticipant(userID) {
			return apperrors.ErrPermissionDenied
		}
		if m.Status != postgres.MatchStatusConfirmed {
			return apperrors.ErrInvalidState
		}

		m.OrganizerScore = &organizerScore
		m.OpponentScore = &opponentScore

		updates := map[string]interface{}{
			"organizer_score": organizerScore,
			"opponent_score":  opponentScore,
			"status":          postgres.MatchStatusCompleted,
		}

		if setScores != nil {
			raw, err := json.Marshal(setScores)
			if err != nil {
				return err
			}
			m.SetScores = datatypes.JSON(raw)
			updates["set_scores"] = datatypes.JSON(raw)
		}

		switch {
		case organizerScore > opponentScore:
			m.WinnerID = &m.OrganizerID
			updates["winner_id"] = m.OrganizerID
		case opponentScore > organizerScore:
			m.WinnerID = m.OpponentID
			updates["winner_id"] = *m.OpponentID
		}
		// Tie: winner stays NULL.

		m.Status = postgres.MatchStatusCompleted
		if err := tx.Model(m).Updates(updates).Error; err != nil {
			return err
		}

		if err := s.updateSideStats(tx, m, m.OrganizerID); err != nil {
			return err
		}
		if m.OpponentID != nil {
			if err := s.updateSideStats(tx, m, *m.OpponentID); err != nil {
				return err
			}
		}

		recorded = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

// updateSideStats increments one side's counters under a row lock. A side
// without a player profile simply has no stats to update.
func (s *MatchService) updateSideStats(tx *gorm.DB, m *postgres.Match, sideID uuid.UUID) error {
	var p postgres.PlayerProfile
	err := tx.Where("user_id = ?", sideID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	won := m.WinnerID != nil && *m.WinnerID == sideID
	return s.Profiles.IncrementStatsAfterMatch(tx, p.ID, won)
}
