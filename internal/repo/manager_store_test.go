package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medoka/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Manager{},
		&models.VerificationToken{},
		&models.RecoveryToken{},
		&models.Pharmacy{},
		&models.WorkDay{},
	))
	return db
}

func TestCreateManagerDuplicateEmail(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.False(t, m.Verified)
	assert.Empty(t, m.Password)

	_, err = s.CreateManager(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestVerificationConsumeOnce(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.IssueVerification(ctx, m.ID, 123456))

	// неверный код не трогает флаг
	_, err = s.ConsumeVerification(ctx, m.ID, 999999)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, got.Verified)

	// верный код: флаг ставится, токен сгорает
	verified, err := s.ConsumeVerification(ctx, m.ID, 123456)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = s.ConsumeVerification(ctx, m.ID, 123456)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyDoesNotTouchOtherManagers(t *testing.T) {
	db := newTestDB(t)
	s := NewManagerStore(db)
	ctx := context.Background()

	a, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	b, err := s.CreateManager(ctx, "b@b.com")
	require.NoError(t, err)

	// токены выпущены в «перекрёстном» порядке: id строки токена A
	// не совпадает с id менеджера A
	require.NoError(t, s.IssueVerification(ctx, b.ID, 111111))
	require.NoError(t, s.IssueVerification(ctx, a.ID, 222222))

	_, err = s.ConsumeVerification(ctx, a.ID, 222222)
	require.NoError(t, err)

	gotB, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, gotB.Verified, "verifying A must never flip B")
}

func TestVerificationReissueInvalidatesOld(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.IssueVerification(ctx, m.ID, 111111))
	require.NoError(t, s.IssueVerification(ctx, m.ID, 222222))

	_, err = s.ConsumeVerification(ctx, m.ID, 111111)
	assert.ErrorIs(t, err, ErrTokenInvalid, "old code must die on reissue")
	_, err = s.ConsumeVerification(ctx, m.ID, 222222)
	assert.NoError(t, err)
}

func TestVerificationExpired(t *testing.T) {
	db := newTestDB(t)
	s := NewManagerStore(db)
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.IssueVerification(ctx, m.ID, 123456))

	// состарим код прямо в БД
	require.NoError(t, db.Model(&models.VerificationToken{}).
		Where("manager_id = ?", m.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = s.ConsumeVerification(ctx, m.ID, 123456)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRecoveryRoundTrip(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.IssueRecovery(ctx, m.ID, "deadbeefdeadbeef"))

	require.NoError(t, s.ConsumeRecovery(ctx, "deadbeefdeadbeef", "new-hash"))
	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)

	// второй раз тот же токен не работает
	err = s.ConsumeRecovery(ctx, "deadbeefdeadbeef", "other-hash")
	assert.ErrorIs(t, err, ErrNotFound)

	// как и никогда не выпускавшийся
	err = s.ConsumeRecovery(ctx, "0000000000000000", "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecoveryExpired(t *testing.T) {
	db := newTestDB(t)
	s := NewManagerStore(db)
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)
	require.NoError(t, s.IssueRecovery(ctx, m.ID, "deadbeefdeadbeef"))

	require.NoError(t, db.Model(&models.RecoveryToken{}).
		Where("manager_id = ?", m.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err = s.ConsumeRecovery(ctx, "deadbeefdeadbeef", "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)

	got, err := s.UpdateProfile(ctx, m.ID, ProfileInput{
		FirstName:   "Amel",
		LastName:    "Bou",
		Gender:      models.GenderMale,
		PhoneNumber: 555123456,
	})
	require.NoError(t, err)
	assert.Equal(t, "Amel", got.FirstName)
	assert.Equal(t, models.GenderMale, got.Gender)
	assert.Equal(t, int64(555123456), got.PhoneNumber)

	_, err = s.UpdateProfile(ctx, m.ID+100, ProfileInput{FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPassword(t *testing.T) {
	s := NewManagerStore(newTestDB(t))
	ctx := context.Background()

	m, err := s.CreateManager(ctx, "a@b.com")
	require.NoError(t, err)

	require.NoError(t, s.SetPassword(ctx, m.ID, "hash"))
	got, err := s.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)

	assert.ErrorIs(t, s.SetPassword(ctx, m.ID+100, "hash"), ErrNotFound)
}
