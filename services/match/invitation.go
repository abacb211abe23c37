package match

import (
	"errors"
	"time"

	"courtside/models/postgres"
	"courtside/services/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Invite creates a pending invitation from the organizer to a specific
// user. The match must still be looking for an opponent, and the invitee
// may hold at most one unresolved invitation per match.
func (s *MatchService) Invite(matchID, inviterID, inviteeID uuid.UUID, message string) (*postgres.MatchInvitation, error) {
	var invitation *postgres.MatchInvitation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		m, err := lockMatch(tx, matchID)
		if err != nil {
			return err
		}
		if m.OrganizerID != inviterID {
			return apperrors.ErrPermissionDenied
		}
		if m.OpponentID != nil {
			return apperrors.ErrInvalidState
		}

		var pending int64
		if err := tx.Model(&postgres.MatchInvitation{}).
			Where("match_id = ? AND invited_user_id = ? AND status = ?",
				matchID, inviteeID, postgres.InvitationStatusPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return apperrors.ErrDuplicateInvitation
		}

		inv := postgres.MatchInvitation{
			MatchID:       matchID,
			InvitedByID:   inviterID,
			InvitedUserID: inviteeID,
			Message:       message,
			Status:        postgres.InvitationStatusPending,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		invitation = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// RespondToInvitation lets the invitee accept or decline. Accepting joins
// the match on their behalf inside the same transaction, so the invitation
// cannot be accepted against a match that just gained an opponent.
func (s *MatchService) RespondToInvitation(invitationID, userID uuid.UUID, accept bool) (*postgres.Match, error) {
	var m *postgres.Match
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var inv postgres.MatchInvitation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invitationID).
			First(&inv).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if inv.InvitedUserID != userID {
			return apperrors.ErrPermissionDenied
		}
		if inv.Status != postgres.InvitationStatusPending {
			return apperrors.ErrInvalidState
		}

		m, err = lockMatch(tx, inv.MatchID)
		if err != nil {
			return err
		}
		if m.OpponentID != nil {
			return apperrors.ErrInvalidState
		}

		status := postgres.InvitationStatusDeclined
		if accept {
			status = postgres.InvitationStatusAccepted
		}
		now := time.Now()
		if err := tx.Model(&inv).
			Select("status", "responded_at").
			Updates(map[string]interface{}{
				"status":       status,
				"responded_at": now,
			}).Error; err != nil {
			return err
		}

		if accept {
			return s.joinLocked(tx, m, userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
