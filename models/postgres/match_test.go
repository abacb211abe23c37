package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func openMatch(scheduledAt time.Time) Match {
	return Match{
		OrganizerID: uuid.New(),
		Status:      MatchStatusPending,
		IsPublic:    true,
		ScheduledAt: scheduledAt,
	}
}

func TestMatchCanJoin(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)

	t.Run("open match is joinable", func(t *testing.T) {
		m := openMatch(future)
		assert.True(t, m.CanJoin(now))
	})

	t.Run("non-pending status", func(t *testing.T) {
		for _, status := range []string{
			MatchStatusConfirmed, MatchStatusInProgress,
			MatchStatusCompleted, MatchStatusCancelled, MatchStatusNoShow,
		} {
			m := openMatch(future)
			m.Status = status
			assert.False(t, m.CanJoin(now), status)
		}
	})

	t.Run("opponent already set", func(t *testing.T) {
		m := openMatch(future)
		opponent := uuid.New()
		m.OpponentID = &opponent
		assert.False(t, m.CanJoin(now))
	})

	t.Run("private match", func(t *testing.T) {
		m := openMatch(future)
		m.IsPublic = false
		assert.False(t, m.CanJoin(now))
	})

	t.Run("scheduled in the past", func(t *testing.T) {
		m := openMatch(now.Add(-time.Minute))
		assert.False(t, m.CanJoin(now))
	})

	t.Run("scheduled exactly now", func(t *testing.T) {
		m := openMatch(now)
		assert.False(t, m.CanJoin(now))
	})
}

func TestMatchIsParticipant(t *testing.T) {
	organizer := uuid.New()
	opponent := uuid.New()
	stranger := uuid.New()

	m := Match{OrganizerID: organizer, OpponentID: &opponent}

	assert.True(t, m.IsParticipant(organizer))
	assert.True(t, m.IsParticipant(opponent))
	assert.False(t, m.IsParticipant(stranger))

	m.OpponentID = nil
	assert.True(t, m.IsParticipant(organizer))
	assert.False(t, m.IsParticipant(opponent))
}

func TestMatchIsTerminal(t *testing.T) {
	terminal := []string{MatchStatusCompleted, MatchStatusCancelled, MatchStatusNoShow}
	for _, status := range terminal {
		m := Match{Status: status}
		assert.True(t, m.IsTerminal(), status)
	}

	active := []string{MatchStatusPending, MatchStatusConfirmed, MatchStatusInProgress}
	for _, status := range active {
		m := Match{Status: status}
		assert.False(t, m.IsTerminal(), status)
	}
}
