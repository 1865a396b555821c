package store

import (
	"testing"
	"time"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&types.Application{}, &types.StaffMember{}))
	return New(db)
}

func sampleApplication(discordID string) *types.Application {
	return &types.Application{
		DiscordID:     discordID,
		DisplayName:   "Jordan Reese",
		Email:         "jordan@example.com",
		ContactHandle: "jordan#0001",
		Department:    "lsfd",
		Motivation:    "I want to serve the city.",
	}
}

func TestCreateSetsDefaults(t *testing.T) {
	s := newTestStore(t)

	app := sampleApplication("100200300")
	require.NoError(t, s.Create(app, false))

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, types.StatusPending, app.Status)
	assert.False(t, app.SubmittedAt.IsZero())
	assert.Equal(t, "100200300", app.DedupeKey)
	assert.Nil(t, app.ReviewedAt)
}

func TestCreateDuplicateConflict(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Create(sampleApplication("100200300"), false))
	err := s.Create(sampleApplication("100200300"), false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateAdminEscapeHatch(t *testing.T) {
	s := newTestStore(t)

	// Operators may create any number of records for the same identity.
	require.NoError(t, s.Create(sampleApplication("999"), true))
	require.NoError(t, s.Create(sampleApplication("999"), true))

	apps, err := s.List()
	require.NoError(t, err)
	assert.Len(t, apps, 2)
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatusStampsReview(t *testing.T) {
	s := newTestStore(t)

	app := sampleApplication("100200300")
	require.NoError(t, s.Create(app, false))

	got, err := s.SetStatus(app.ID, types.StatusApproved, "999", "welcome")
	require.NoError(t, err)

	assert.Equal(t, types.StatusApproved, got.Status)
	assert.Equal(t, "999", got.ReviewedBy)
	assert.Equal(t, "welcome", got.ReviewNotes)
	require.NotNil(t, got.ReviewedAt)
	assert.False(t, got.ReviewedAt.Before(got.SubmittedAt))
}

func TestSetStatusPendingClearsStamps(t *testing.T) {
	s := newTestStore(t)

	app := sampleApplication("100200300")
	require.NoError(t, s.Create(app, false))
	_, err := s.SetStatus(app.ID, types.StatusRejected, "999", "no")
	require.NoError(t, err)

	got, err := s.SetStatus(app.ID, types.StatusPending, "999", "")
	require.NoError(t, err)

	assert.Equal(t, types.StatusPending, got.Status)
	assert.Nil(t, got.ReviewedAt)
	assert.Empty(t, got.ReviewedBy)
	assert.Empty(t, got.ReviewNotes)
}

func TestSetStatusNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SetStatus("nope", types.StatusApproved, "999", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first := sampleApplication("1")
	second := sampleApplication("2")
	third := sampleApplication("3")
	for _, app := range []*types.Application{first, second, third} {
		require.NoError(t, s.Create(app, false))
	}

	// Spread the timestamps so ordering is deterministic.
	base := time.Now().UTC()
	for i, app := range []*types.Application{first, second, third} {
		require.NoError(t, s.db.Model(app).Update("submitted_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	apps, err := s.List()
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, third.ID, apps[0].ID)
	assert.Equal(t, second.ID, apps[1].ID)
	assert.Equal(t, first.ID, apps[2].ID)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)

	a := sampleApplication("1")
	b := sampleApplication("2")
	require.NoError(t, s.Create(a, false))
	require.NoError(t, s.Create(b, false))
	_, err := s.SetStatus(a.ID, types.StatusApproved, "999", "in")
	require.NoError(t, err)
	_, err = s.SetStatus(b.ID, types.StatusRejected, "999", "out")
	require.NoError(t, err)

	n, err := s.Reset([]string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, id := range []string{a.ID, b.ID} {
		got, err := s.Get(id)
		require.NoError(t, err)
		assert.Equal(t, types.StatusPending, got.Status)
		assert.Nil(t, got.ReviewedAt)
		assert.Empty(t, got.ReviewedBy)
		assert.Empty(t, got.ReviewNotes)
	}
}

func TestIsAdmin(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.db.Create(&types.StaffMember{DiscordID: "999", Name: "Chief", IsAdmin: true}).Error)
	require.NoError(t, s.db.Create(&types.StaffMember{DiscordID: "555", Name: "Deputy"}).Error)

	admin, err := s.IsAdmin("999")
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = s.IsAdmin("555")
	require.NoError(t, err)
	assert.False(t, admin)

	admin, err = s.IsAdmin("unknown")
	require.NoError(t, err)
	assert.False(t, admin)
}
