package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
	InvitationStatusExpired  = "expired"
)

/*
 * 'MatchInvitation' is a directed offer from the organizer to a specific
 * user. At most one invitation may exist per (match, invitee) pair.
 */
type MatchInvitation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	MatchID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invitations_match_invitee,priority:1"`
	InvitedByID   uuid.UUID `gorm:"type:uuid;not null"`
	InvitedUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invitations_match_invitee,priority:2;index:idx_invitations_invitee_status,priority:1"`

	Status      string     `gorm:"size:20;default:pending;index:idx_invitations_invitee_status,priority:2"`
	Message     string
	RespondedAt *time.Time

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	// Relationships
	Match       Match `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	InvitedBy   User  `gorm:"foreignKey:InvitedByID;constraint:OnDelete:CASCADE"`
	InvitedUser User  `gorm:"foreignKey:InvitedUserID;constraint:OnDelete:CASCADE"`
}

func (i *MatchInvitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
