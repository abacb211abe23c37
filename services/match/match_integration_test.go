package match

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"courtside/config"
	"courtside/models/postgres"
	"courtside/services/apperrors"
	"courtside/services/profile"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	godotenv.Load("../../.env")
	if os.Getenv("POSTGRES_HOST") == "" {
		t.Skip("POSTGRES_HOST not set, skipping database tests")
	}
	db, err := config.ConnectGORM()
	require.NoError(t, err)
	require.NoError(t, config.MigrateDatabase(db))
	return db
}

func testMatchService(t *testing.T) *MatchService {
	db := testDB(t)
	return NewMatchService(db, profile.NewProfileService(db))
}

func createTestUser(t *testing.T, db *gorm.DB) *postgres.User {
	u := postgres.User{
		Phone:           fmt.Sprintf("09%09d", rand.Intn(1000000000)),
		PasswordHash:    "x",
		IsPhoneVerified: true,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func createTestPlayer(t *testing.T, db *gorm.DB, userID uuid.UUID, rating float64) *postgres.PlayerProfile {
	p := postgres.PlayerProfile{
		UserID:     userID,
		NTRPRating: rating,
		PlayStyle:  postgres.PlayStyleAllCourt,
		Handedness: postgres.HandednessRight,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func createOpenMatch(t *testing.T, svc *MatchService, organizerID uuid.UUID, in CreateInput) *postgres.Match {
	if in.ScheduledAt.IsZero() {
		in.ScheduledAt = time.Now().Add(48 * time.Hour)
	}
	in.IsPublic = true
	m, err := svc.Create(organizerID, in)
	require.NoError(t, err)
	return m
}

func TestCreateRejectsPastSchedule(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)

	_, err := svc.Create(organizer.ID, CreateInput{
		ScheduledAt: time.Now().Add(-time.Hour),
		IsPublic:    true,
	})
	assert.ErrorIs(t, err, apperrors.ErrPastSchedule)
}

func TestCreateRejectsInvertedNTRPRange(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)

	low, high := 3.0, 4.5
	_, err := svc.Create(organizer.ID, CreateInput{
		ScheduledAt: time.Now().Add(time.Hour),
		NTRPMin:     &high,
		NTRPMax:     &low,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidNTRPRange)
}

func TestJoinConfirmsMatch(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	opponent := createTestUser(t, svc.DB)
	third := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})

	t.Run("organizer cannot fill own slot", func(t *testing.T) {
		_, err := svc.Join(m.ID, organizer.ID)
		assert.ErrorIs(t, err, apperrors.ErrSelfJoin)
	})

	joined, err := svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusConfirmed, joined.Status)
	require.NotNil(t, joined.OpponentID)
	assert.Equal(t, opponent.ID, *joined.OpponentID)

	t.Run("slot already taken", func(t *testing.T) {
		_, err := svc.Join(m.ID, third.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotJoinable)
	})
}

func TestJoinNTRPGate(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	low, high := 3.5, 4.5
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{NTRPMin: &low, NTRPMax: &high})

	t.Run("rating below window", func(t *testing.T) {
		weak := createTestUser(t, svc.DB)
		createTestPlayer(t, svc.DB, weak.ID, 2.5)
		_, err := svc.Join(m.ID, weak.ID)
		assert.ErrorIs(t, err, apperrors.ErrRatingTooLow)
	})

	t.Run("rating above window", func(t *testing.T) {
		strong := createTestUser(t, svc.DB)
		createTestPlayer(t, svc.DB, strong.ID, 6.0)
		_, err := svc.Join(m.ID, strong.ID)
		assert.ErrorIs(t, err, apperrors.ErrRatingTooHigh)
	})

	t.Run("unrated player passes", func(t *testing.T) {
		unrated := createTestUser(t, svc.DB)
		joined, err := svc.Join(m.ID, unrated.ID)
		require.NoError(t, err)
		assert.Equal(t, postgres.MatchStatusConfirmed, joined.Status)
	})
}

func TestLeaveReopensMatch(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	opponent := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})

	_, err := svc.Leave(m.ID, opponent.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOpponent, "cannot leave before joining")

	_, err = svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)

	left, err := svc.Leave(m.ID, opponent.ID)
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusPending, left.Status)
	assert.Nil(t, left.OpponentID)

	// Reopened match is joinable again.
	joined, err := svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusConfirmed, joined.Status)
}

func TestCancelMatch(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	opponent := createTestUser(t, svc.DB)
	stranger := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})
	_, err := svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(m.ID, stranger.ID, "rain")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	cancelled, err := svc.Cancel(m.ID, opponent.ID, "rain")
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledByID)
	assert.Equal(t, opponent.ID, *cancelled.CancelledByID)
	assert.Equal(t, "rain", cancelled.CancellationReason)

	_, err = svc.Cancel(m.ID, organizer.ID, "again")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "terminal matches stay terminal")
}

func TestUpdateMatch(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	stranger := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{Title: "friendly"})

	_, err := svc.Update(m.ID, stranger.ID, map[string]interface{}{"title": "hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "only the organizer edits")

	_, err = svc.Update(m.ID, organizer.ID, map[string]interface{}{
		"scheduled_at": time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrPastSchedule)

	updated, err := svc.Update(m.ID, organizer.ID, map[string]interface{}{
		"title":  "saturday singles",
		"status": postgres.MatchStatusCompleted, // not an editable field
	})
	require.NoError(t, err)

	var stored postgres.Match
	require.NoError(t, svc.DB.First(&stored, "id = ?", updated.ID).Error)
	assert.Equal(t, "saturday singles", stored.Title)
	assert.Equal(t, postgres.MatchStatusPending, stored.Status, "status edits are ignored")

	cancelled, err := svc.Cancel(m.ID, organizer.ID, "")
	require.NoError(t, err)
	_, err = svc.Update(cancelled.ID, organizer.ID, map[string]interface{}{"title": "too late"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestRecordScoreDecisive(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	opponent := createTestUser(t, svc.DB)
	orgProfile := createTestPlayer(t, svc.DB, organizer.ID, 4.0)
	oppProfile := createTestPlayer(t, svc.DB, opponent.ID, 4.0)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})
	_, err := svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)

	recorded, err := svc.RecordScore(m.ID, organizer.ID, 6, 4, [][]int{{6, 4}})
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusCompleted, recorded.Status)
	require.NotNil(t, recorded.WinnerID)
	assert.Equal(t, organizer.ID, *recorded.WinnerID)

	var org, opp postgres.PlayerProfile
	require.NoError(t, svc.DB.First(&org, "id = ?", orgProfile.ID).Error)
	require.NoError(t, svc.DB.First(&opp, "id = ?", oppProfile.ID).Error)
	assert.Equal(t, 1, org.MatchesPlayed)
	assert.Equal(t, 1, org.MatchesWon)
	assert.Equal(t, 1, opp.MatchesPlayed)
	assert.Equal(t, 0, opp.MatchesWon)

	_, err = svc.RecordScore(m.ID, organizer.ID, 6, 4, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "score is recorded once")
}

func TestRecordScoreTie(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	opponent := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})
	_, err := svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)

	recorded, err := svc.RecordScore(m.ID, opponent.ID, 1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusCompleted, recorded.Status)
	assert.Nil(t, recorded.WinnerID, "equal scores complete with no winner")
}

func TestRecordScoreGuards(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	stranger := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})

	_, err := svc.RecordScore(m.ID, organizer.ID, 6, 4, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "pending match has no result yet")

	opponent := createTestUser(t, svc.DB)
	_, err = svc.Join(m.ID, opponent.ID)
	require.NoError(t, err)

	_, err = svc.RecordScore(m.ID, stranger.ID, 6, 4, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

// Two matches sharing a player complete concurrently; the shared player's
// counters must reflect both results.
func TestConcurrentScoringKeepsCounters(t *testing.T) {
	svc := testMatchService(t)
	shared := createTestUser(t, svc.DB)
	sharedProfile := createTestPlayer(t, svc.DB, shared.ID, 4.0)
	a := createTestUser(t, svc.DB)
	b := createTestUser(t, svc.DB)

	m1 := createOpenMatch(t, svc, shared.ID, CreateInput{})
	m2 := createOpenMatch(t, svc, shared.ID, CreateInput{ScheduledAt: time.Now().Add(72 * time.Hour)})
	_, err := svc.Join(m1.ID, a.ID)
	require.NoError(t, err)
	_, err = svc.Join(m2.ID, b.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.RecordScore(m1.ID, shared.ID, 6, 3, nil)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.RecordScore(m2.ID, shared.ID, 2, 6, nil)
	}()
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var p postgres.PlayerProfile
	require.NoError(t, svc.DB.First(&p, "id = ?", sharedProfile.ID).Error)
	assert.Equal(t, 2, p.MatchesPlayed)
	assert.Equal(t, 1, p.MatchesWon)
}

func TestInvitationFlow(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	invitee := createTestUser(t, svc.DB)
	stranger := createTestUser(t, svc.DB)
	m := createOpenMatch(t, svc, organizer.ID, CreateInput{})

	_, err := svc.Invite(m.ID, stranger.ID, invitee.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "only the organizer invites")

	inv, err := svc.Invite(m.ID, organizer.ID, invitee.ID, "saturday morning?")
	require.NoError(t, err)
	assert.Equal(t, postgres.InvitationStatusPending, inv.Status)

	_, err = svc.Invite(m.ID, organizer.ID, invitee.ID, "again")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateInvitation)

	_, err = svc.RespondToInvitation(inv.ID, stranger.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "only the invitee responds")

	joined, err := svc.RespondToInvitation(inv.ID, invitee.ID, true)
	require.NoError(t, err)
	assert.Equal(t, postgres.MatchStatusConfirmed, joined.Status)

	_, err = svc.RespondToInvitation(inv.ID, invitee.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "invitations resolve once")
}

func TestListAvailableExcludesOwnAndTaken(t *testing.T) {
	svc := testMatchService(t)
	organizer := createTestUser(t, svc.DB)
	viewer := createTestUser(t, svc.DB)

	open := createOpenMatch(t, svc, organizer.ID, CreateInput{})
	own := createOpenMatch(t, svc, viewer.ID, CreateInput{})
	taken := createOpenMatch(t, svc, organizer.ID, CreateInput{ScheduledAt: time.Now().Add(96 * time.Hour)})
	_, err := svc.Join(taken.ID, createTestUser(t, svc.DB).ID)
	require.NoError(t, err)

	matches, err := svc.ListAvailable(viewer.ID)
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, m := range matches {
		ids[m.ID] = true
	}
	assert.True(t, ids[open.ID])
	assert.False(t, ids[own.ID], "own matches are hidden")
	assert.False(t, ids[taken.ID], "confirmed matches are hidden")
}
