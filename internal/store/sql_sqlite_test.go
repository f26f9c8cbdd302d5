package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/utils"
	"github.com/MKhiriev/lockbox/migrations"
	"github.com/MKhiriev/lockbox/models"
)

// newSQLiteStorages opens a migrated database in a temp dir.
func newSQLiteStorages(t *testing.T) (*Storages, *DB) {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnect(ctx, config.DB{DSN: "sqlite://" + filepath.Join(t.TempDir(), "lockbox.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.Equal(t, migrations.DialectSQLite, db.Dialect())
	require.NoError(t, db.Migrate(ctx))

	return NewStorages(db, utils.NewUUIDGenerator(), logger.Nop()), db
}

func seedUser(t *testing.T, s *Storages, id, email string) models.User {
	t.Helper()
	u, err := s.UserRepository.CreateUser(context.Background(), models.User{
		UserID:       id,
		Email:        email,
		Salt:         "00",
		VerifierHash: "11",
		WrappedKey:   "22:33",
	})
	require.NoError(t, err)
	return u
}

func TestNewConnect_UnsupportedDSN(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{DSN: "mysql://localhost"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestSQLite_MigrateIsIdempotent(t *testing.T) {
	_, db := newSQLiteStorages(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestSQLite_Users(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "alice@example.com")

	_, err := s.UserRepository.CreateUser(ctx, models.User{UserID: "u-2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)

	found, err := s.UserRepository.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", found.UserID)
	assert.Nil(t, found.LockedUntil)

	locked := time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second)
	failure := models.LoginFailure{UserID: "u-1", LockAfter: 3, LockUntil: locked}
	for want := 1; want <= 2; want++ {
		attempts, err := s.UserRepository.RecordLoginFailure(ctx, failure)
		require.NoError(t, err)
		assert.Equal(t, want, attempts)
	}

	found, err = s.UserRepository.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, found.LockedUntil, "locked before reaching the limit")

	attempts, err := s.UserRepository.RecordLoginFailure(ctx, failure)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	found, err = s.UserRepository.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 3, found.FailedAttempts)
	require.NotNil(t, found.LockedUntil)
	assert.True(t, found.LockedUntil.Equal(locked))

	require.NoError(t, s.UserRepository.RecordLoginSuccess(ctx, "u-1", time.Now().UTC()))
	found, err = s.UserRepository.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, found.FailedAttempts)
	assert.Nil(t, found.LockedUntil)
	assert.NotNil(t, found.LastLogin)

	_, err = s.UserRepository.RecordLoginFailure(ctx, models.LoginFailure{UserID: "missing"})
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	_, err = s.UserRepository.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestSQLite_ChangeCredentialRevokesSessions(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seedUser(t, s, "u-1", "bob@example.com")
	for _, id := range []string{"s-1", "s-2"} {
		require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{
			ID: id, UserID: "u-1", TokenHash: "h-" + id, ExpiresAt: now.Add(time.Hour), CreatedAt: now,
		}))
	}

	_, err := s.SessionRepository.GetSession(ctx, "s-1", "h-s-1", now)
	require.NoError(t, err)

	require.NoError(t, s.UserRepository.ChangeCredential(ctx, models.CredentialUpdate{
		UserID: "u-1", Salt: "aa", VerifierHash: "bb", WrappedKey: "cc:dd",
	}))

	u, err := s.UserRepository.FindUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "aa", u.Salt)
	assert.Equal(t, "cc:dd", u.WrappedKey)

	for _, id := range []string{"s-1", "s-2"} {
		_, err = s.SessionRepository.GetSession(ctx, id, "h-"+id, now)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
}

func TestSQLite_Sessions(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seedUser(t, s, "u-1", "carol@example.com")

	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{
		ID: "live", UserID: "u-1", TokenHash: "h1", ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))
	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{
		ID: "old", UserID: "u-1", TokenHash: "h2", ExpiresAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour),
	}))

	err := s.SessionRepository.CreateSession(ctx, models.Session{ID: "x", UserID: "ghost", TokenHash: "h", ExpiresAt: now, CreatedAt: now})
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	_, err = s.SessionRepository.GetSession(ctx, "old", "h2", now)
	assert.ErrorIs(t, err, ErrSessionNotFound, "expired sessions are not live")

	_, err = s.SessionRepository.GetSession(ctx, "live", "wrong-hash", now)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	n, err := s.SessionRepository.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, s.SessionRepository.DeleteSession(ctx, "live", "u-1"))
	assert.ErrorIs(t, s.SessionRepository.DeleteSession(ctx, "live", "u-1"), ErrSessionNotFound)
}

func TestSQLite_Audit(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "dave@example.com")

	require.NoError(t, s.AuditRepository.RecordEvent(ctx, models.AuditEvent{
		ID: "a-1", UserID: "u-1", Action: models.AuditRegister, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, s.AuditRepository.RecordEvent(ctx, models.AuditEvent{
		ID: "a-2", Action: models.AuditLoginFailed, Details: map[string]any{"reason": "unknown_email"}, CreatedAt: time.Now().UTC(),
	}))
}

func TestSQLite_VaultLifecycle(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	repo := s.VaultRepository

	seedUser(t, s, "u-1", "erin@example.com")
	seedUser(t, s, "u-2", "frank@example.com")

	notes := models.EncryptedField("n:n")
	_, err := repo.CreateItem(ctx, models.VaultItem{ID: "i-1", UserID: "u-1", Type: models.ItemPassword, Title: "t:1", Data: "d:1", Notes: &notes})
	require.NoError(t, err)
	_, err = repo.CreateItem(ctx, models.VaultItem{ID: "i-2", UserID: "u-1", Type: models.ItemNote, Title: "t:2", Data: "d:2", IsFavorite: true})
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, models.VaultItemFilter{UserID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	noteType := models.ItemNote
	items, err = repo.ListItems(ctx, models.VaultItemFilter{UserID: "u-1", Type: &noteType})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "i-2", items[0].ID)

	items, err = repo.ListItems(ctx, models.VaultItemFilter{UserID: "u-1", FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsFavorite)

	items, err = repo.ListItems(ctx, models.VaultItemFilter{UserID: "u-2"})
	require.NoError(t, err)
	assert.Empty(t, items)

	got, err := repo.GetItem(ctx, "u-1", "i-1")
	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)
	assert.NotNil(t, got.LastUsed)

	_, err = repo.GetItem(ctx, "u-2", "i-1")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	// rotate the data twelve times; only the newest ten versions are kept
	for i := 0; i < 12; i++ {
		data := models.EncryptedField("d:v" + string(rune('a'+i)))
		_, err = repo.UpdateItem(ctx, models.VaultItemUpdate{ID: "i-1", UserID: "u-1", Data: &data})
		require.NoError(t, err)
	}

	history, err := repo.ListHistory(ctx, "u-1", "i-1", models.PasswordHistoryLimit)
	require.NoError(t, err)
	require.Len(t, history, models.PasswordHistoryLimit)
	assert.Equal(t, models.EncryptedField("d:vk"), history[0].Data, "newest previous version first")

	_, err = repo.ListHistory(ctx, "u-2", "i-1", models.PasswordHistoryLimit)
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	require.NoError(t, repo.DeleteItem(ctx, "u-1", "i-1"))
	assert.ErrorIs(t, repo.DeleteItem(ctx, "u-1", "i-1"), ErrVaultItemNotFound)

	items, err = repo.ListItems(ctx, models.VaultItemFilter{UserID: "u-1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "i-2", items[0].ID)
}

func TestSQLite_CategoriesCountLiveItems(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "gina@example.com")
	seedUser(t, s, "u-2", "hank@example.com")

	work, err := s.CategoryRepository.CreateCategory(ctx, models.Category{ID: "c-1", UserID: "u-1", Name: "Work", Icon: "folder", Color: "#6366f1"})
	require.NoError(t, err)
	assert.Equal(t, 0, work.SortOrder)
	home, err := s.CategoryRepository.CreateCategory(ctx, models.Category{ID: "c-2", UserID: "u-1", Name: "Home", Icon: "folder", Color: "#6366f1"})
	require.NoError(t, err)
	assert.Equal(t, 1, home.SortOrder)
	other, err := s.CategoryRepository.CreateCategory(ctx, models.Category{ID: "c-3", UserID: "u-2", Name: "Work", Icon: "folder", Color: "#6366f1"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.SortOrder, "sort order is per user")

	inWork := "c-1"
	for _, id := range []string{"i-1", "i-2", "i-3"} {
		_, err = s.VaultRepository.CreateItem(ctx, models.VaultItem{ID: id, UserID: "u-1", Type: models.ItemPassword, Title: "t:t", Data: "d:d", CategoryID: &inWork})
		require.NoError(t, err)
	}
	require.NoError(t, s.VaultRepository.DeleteItem(ctx, "u-1", "i-3"))

	categories, err := s.CategoryRepository.ListCategories(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Work", categories[0].Name)
	assert.Equal(t, 2, categories[0].ItemCount, "deleted items are not counted")
	assert.Equal(t, 0, categories[1].ItemCount)

	items, err := s.VaultRepository.ListItems(ctx, models.VaultItemFilter{UserID: "u-1", CategoryID: &inWork})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = s.CategoryRepository.GetCategory(ctx, "u-2", "c-1")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	byType, err := s.VaultRepository.CountItemsByType(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []models.TypeCount{{Type: models.ItemPassword, Count: 2}}, byType)
}

func TestSQLite_Preferences(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()

	seedUser(t, s, "u-1", "ivy@example.com")

	prefs, err := s.UserRepository.GetPreferences(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	prefs.Theme = models.ThemeSystem
	prefs.ClipboardTimeout = 0
	require.NoError(t, s.UserRepository.UpdatePreferences(ctx, "u-1", prefs))

	got, err := s.UserRepository.GetPreferences(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, prefs, got)

	assert.ErrorIs(t, s.UserRepository.UpdatePreferences(ctx, "ghost", prefs), ErrNoUserWasFound)
}

func TestSQLite_DeleteUserCascades(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	now := time.Now().UTC()

	seedUser(t, s, "u-1", "jack@example.com")
	seedUser(t, s, "u-2", "kate@example.com")

	_, err := s.CategoryRepository.CreateCategory(ctx, models.Category{ID: "c-1", UserID: "u-1", Name: "Work", Icon: "folder", Color: "#6366f1"})
	require.NoError(t, err)
	_, err = s.VaultRepository.CreateItem(ctx, models.VaultItem{ID: "i-1", UserID: "u-1", Type: models.ItemNote, Title: "t:t", Data: "d:d"})
	require.NoError(t, err)
	_, err = s.VaultRepository.CreateItem(ctx, models.VaultItem{ID: "i-2", UserID: "u-2", Type: models.ItemNote, Title: "t:t", Data: "d:d"})
	require.NoError(t, err)
	require.NoError(t, s.SessionRepository.CreateSession(ctx, models.Session{ID: "s-1", UserID: "u-1", TokenHash: "h", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, s.AuditRepository.RecordEvent(ctx, models.AuditEvent{ID: "a-1", UserID: "u-1", Action: models.AuditAccountDeleted, CreatedAt: now}))

	sessions, err := s.SessionRepository.ListUserSessions(ctx, "u-1", now)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, s.UserRepository.DeleteUser(ctx, "u-1"))
	assert.ErrorIs(t, s.UserRepository.DeleteUser(ctx, "u-1"), ErrNoUserWasFound)

	_, err = s.UserRepository.FindUserByID(ctx, "u-1")
	assert.ErrorIs(t, err, ErrNoUserWasFound)

	sessions, err = s.SessionRepository.ListUserSessions(ctx, "u-1", now)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	categories, err := s.CategoryRepository.ListCategories(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = s.VaultRepository.GetItem(ctx, "u-1", "i-1")
	assert.ErrorIs(t, err, ErrVaultItemNotFound)

	// Other users are untouched.
	_, err = s.VaultRepository.GetItem(ctx, "u-2", "i-2")
	require.NoError(t, err)

	// The audit row outlives the account, detached from it.
	n, err := s.AuditRepository.CountEvents(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSQLite_AuditLogPaging(t *testing.T) {
	s, _ := newSQLiteStorages(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	seedUser(t, s, "u-1", "liam@example.com")

	for i, action := range []models.AuditAction{models.AuditRegister, models.AuditLoginSuccess, models.AuditLoginFailed, models.AuditLoginSuccess} {
		require.NoError(t, s.AuditRepository.RecordEvent(ctx, models.AuditEvent{
			ID:        "a-" + string(rune('1'+i)),
			UserID:    "u-1",
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := s.AuditRepository.ListEvents(ctx, models.AuditLogQuery{UserID: "u-1", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a-3", page[0].ID)
	assert.Equal(t, "a-2", page[1].ID)

	total, err := s.AuditRepository.CountEvents(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	counts, err := s.AuditRepository.CountActionsSince(ctx, "u-1", base.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, []models.ActionCount{
		{Action: models.AuditLoginFailed, Count: 1},
		{Action: models.AuditLoginSuccess, Count: 2},
	}, counts)
}
