package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Match status values. NO_SHOW exists in the enum but no service operation
// currently produces it; it is still treated as terminal by the guards.
const (
	MatchStatusPending    = "pending"
	MatchStatusConfirmed  = "confirmed"
	MatchStatusInProgress = "in_progress"
	MatchStatusCompleted  = "completed"
	MatchStatusCancelled  = "cancelled"
	MatchStatusNoShow     = "no_show"
)

const (
	MatchTypeSingles = "singles"
	MatchTypeDoubles = "doubles"
)

/*
 * 'Match' is the central scheduling entity. The organizer owns the row;
 * opponent, winner and cancelled-by are weak references that are nulled
 * when the referenced account disappears.
 */
type Match struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	OrganizerID uuid.UUID  `gorm:"type:uuid;not null;index:idx_matches_organizer_status,priority:1"`
	OpponentID  *uuid.UUID `gorm:"type:uuid;index:idx_matches_opponent_status,priority:1"`

	Title       string `gorm:"size:255"`
	Description string

	MatchType string `gorm:"size:10;default:singles;index"`

	ScheduledAt     time.Time `gorm:"not null;index:idx_matches_public_pending,priority:3"`
	DurationMinutes int       `gorm:"default:90"`

	// Either a registered court or a free-text name.
	CourtID   *uuid.UUID `gorm:"type:uuid;index"`
	CourtName string     `gorm:"size:255"`

	Status string `gorm:"size:20;default:pending;index:idx_matches_organizer_status,priority:2;index:idx_matches_opponent_status,priority:2;index:idx_matches_public_pending,priority:1"`

	// Scoring, nullable until recorded.
	OrganizerScore *int
	OpponentScore  *int
	SetScores      datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	// NULL winner on a completed match means a tie.
	WinnerID *uuid.UUID `gorm:"type:uuid"`

	// NTRP eligibility window for the opponent.
	NTRPMin *float64 `gorm:"type:decimal(2,1)"`
	NTRPMax *float64 `gorm:"type:decimal(2,1);check:valid_ntrp_range,ntrp_min IS NULL OR ntrp_max IS NULL OR ntrp_min <= ntrp_max"`

	IsPublic bool `gorm:"default:true;index:idx_matches_public_pending,priority:2"`

	CancelledByID      *uuid.UUID `gorm:"type:uuid"`
	CancellationReason string

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time

	// Relationships
	Organizer   User  `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`
	Opponent    *User `gorm:"foreignKey:OpponentID;constraint:OnDelete:SET NULL"`
	Winner      *User `gorm:"foreignKey:WinnerID;constraint:OnDelete:SET NULL"`
	CancelledBy *User `gorm:"foreignKey:CancelledByID;constraint:OnDelete:SET NULL"`
	Court       *Court `gorm:"foreignKey:CourtID;constraint:OnDelete:SET NULL"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CanJoin reports whether an opponent slot is open: pending, opponent-less,
// public and strictly in the future. All four conditions are required.
func (m *Match) CanJoin(now time.Time) bool {
	return m.Status == MatchStatusPending &&
		m.OpponentID == nil &&
		m.IsPublic &&
		m.ScheduledAt.After(now)
}

// IsParticipant reports whether the user is the organizer or the current
// opponent.
func (m *Match) IsParticipant(userID uuid.UUID) bool {
	if m.OrganizerID == userID {
		return true
	}
	return m.OpponentID != nil && *m.OpponentID == userID
}

// IsTerminal reports whether the match reached a final state.
func (m *Match) IsTerminal() bool {
	switch m.Status {
	case MatchStatusCompleted, MatchStatusCancelled, MatchStatusNoShow:
		return true
	}
	return false
}
