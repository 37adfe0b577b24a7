package auth

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/HRPortal/HRPortal/internal/db/controller/user"
	"github.com/HRPortal/HRPortal/internal/db/models"
	"github.com/HRPortal/HRPortal/internal/identity"
)

var errBoom = errors.New("boom")

type fakeFetcher struct {
	calls    atomic.Int32
	profiles map[string]*identity.Profile
	err      error
}

func (f *fakeFetcher) FetchProfile(_ context.Context, subject string) (*identity.Profile, error) {
	f.calls.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	p, ok := f.profiles[subject]
	if !ok {
		return nil, identity.ErrProfileNotFound
	}

	return p, nil
}

func profile(id, first, last string, emails ...string) *identity.Profile {
	p := &identity.Profile{ID: id, FirstName: first, LastName: last}

	for i, e := range emails {
		p.EmailAddresses = append(p.EmailAddresses, identity.EmailAddress{ID: string(rune('a' + i)), EmailAddress: e})
	}

	return p
}

// scriptedStore replays fixed results to drive the conflict paths.
type scriptedStore struct {
	gets      []func() (*models.User, error)
	createErr error
	getCalls  int
	creates   int
}

func (s *scriptedStore) Get(context.Context, string) (*models.User, error) {
	f := s.gets[s.getCalls]
	s.getCalls++

	return f()
}

func (s *scriptedStore) Create(context.Context, *models.User) error {
	s.creates++
	return s.createErr
}

func notFound() (*models.User, error) { return nil, user.ErrUserNotFound }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}, &models.AuditLog{}))

	return db
}

func TestSyncUserCreatesOnFirstSight(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	p := profile("user_1", "Jane", "Doe", "jane@example.com")
	p.ImageURL = "https://img.example.com/jane.png"
	p.ExternalAccounts = []identity.ExternalAccount{{Provider: "oauth_google", ProviderUserID: "g_42"}}

	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{"user_1": p}}
	s := NewSyncer(user.New(db), fetcher, "google")

	u, err := s.SyncUser(ctx, "user_1")
	require.NoError(t, err)

	assert.Equal(t, "user_1", u.ID)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane Doe", u.Name)
	assert.Equal(t, models.RoleEmployee, u.Role)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.AvatarURL)
	assert.Equal(t, "https://img.example.com/jane.png", *u.AvatarURL)
	require.NotNil(t, u.GoogleID)
	assert.Equal(t, "g_42", *u.GoogleID)

	again, err := s.SyncUser(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, u.Email, again.Email)
	assert.EqualValues(t, 1, fetcher.calls.Load(), "known subjects are not fetched again")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncUserKeepsExistingRow(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	require.NoError(t, user.New(db).Create(ctx, &models.User{
		ID: "user_1", Email: "old@example.com", Name: "Old Name", Role: models.RoleManager, IsActive: true,
	}))

	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{
		"user_1": profile("user_1", "New", "Name", "new@example.com"),
	}}

	u, err := NewSyncer(user.New(db), fetcher, "").SyncUser(ctx, "user_1")
	require.NoError(t, err)

	assert.Equal(t, "old@example.com", u.Email)
	assert.Equal(t, models.RoleManager, u.Role)
	assert.Zero(t, fetcher.calls.Load())
}

func TestSyncUserNameFallback(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{
		"user_2": profile("user_2", "", "  ", "jane@x.com"),
	}}

	u, err := NewSyncer(user.New(db), fetcher, "google").SyncUser(ctx, "user_2")
	require.NoError(t, err)
	assert.Equal(t, "jane", u.Name)
	assert.Nil(t, u.AvatarURL)
	assert.Nil(t, u.GoogleID)
}

func TestSyncUserConcurrentFirstSight(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{
		"user_1": profile("user_1", "Jane", "Doe", "jane@example.com"),
	}}
	s := NewSyncer(user.New(db), fetcher, "google")

	const workers = 8

	var (
		wg      sync.WaitGroup
		results = make([]*models.User, workers)
		errs    = make([]error, workers)
	)

	for i := range workers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.SyncUser(ctx, "user_1")
		}(i)
	}

	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, "user_1", results[i].ID)
		assert.Equal(t, "jane@example.com", results[i].Email)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", "user_1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncUserConflictRereads(t *testing.T) {
	winner := &models.User{ID: "user_1", Email: "jane@example.com", Role: models.RoleEmployee, IsActive: true}

	store := &scriptedStore{
		gets:      []func() (*models.User, error){notFound, func() (*models.User, error) { return winner, nil }},
		createErr: user.ErrUserExists,
	}
	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{
		"user_1": profile("user_1", "Jane", "Doe", "jane@example.com"),
	}}

	u, err := NewSyncer(store, fetcher, "google").SyncUser(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Same(t, winner, u)
	assert.Equal(t, 2, store.getCalls)
	assert.Equal(t, 1, store.creates)
}

func TestSyncUserConflictWithOtherSubject(t *testing.T) {
	store := &scriptedStore{
		gets:      []func() (*models.User, error){notFound, notFound},
		createErr: user.ErrUserExists,
	}
	fetcher := &fakeFetcher{profiles: map[string]*identity.Profile{
		"user_1": profile("user_1", "Jane", "Doe", "taken@example.com"),
	}}

	u, err := NewSyncer(store, fetcher, "google").SyncUser(context.Background(), "user_1")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, user.ErrUserExists)
	assert.Nil(t, u)
	assert.Equal(t, 2, store.getCalls, "exactly one re-read, no retries")
}

func TestSyncUserErrors(t *testing.T) {
	tests := []struct {
		name        string
		store       *scriptedStore
		fetcher     *fakeFetcher
		wantErr     error
		wantFetches int32
	}{
		{
			name: "provider down",
			store: &scriptedStore{
				gets: []func() (*models.User, error){notFound},
			},
			fetcher:     &fakeFetcher{err: errBoom},
			wantErr:     ErrIdentityProviderUnavailable,
			wantFetches: 1,
		},
		{
			name: "profile without email",
			store: &scriptedStore{
				gets: []func() (*models.User, error){notFound},
			},
			fetcher: &fakeFetcher{profiles: map[string]*identity.Profile{
				"user_1": profile("user_1", "Jane", "Doe"),
			}},
			wantErr:     identity.ErrNoEmailAddress,
			wantFetches: 1,
		},
		{
			name: "store read fails",
			store: &scriptedStore{
				gets: []func() (*models.User, error){func() (*models.User, error) { return nil, errBoom }},
			},
			fetcher: &fakeFetcher{},
			wantErr: ErrStoreUnavailable,
		},
		{
			name: "store write fails",
			store: &scriptedStore{
				gets:      []func() (*models.User, error){notFound},
				createErr: errBoom,
			},
			fetcher: &fakeFetcher{profiles: map[string]*identity.Profile{
				"user_1": profile("user_1", "Jane", "Doe", "jane@example.com"),
			}},
			wantErr:     ErrStoreUnavailable,
			wantFetches: 1,
		},
		{
			name: "re-read after conflict fails",
			store: &scriptedStore{
				gets: []func() (*models.User, error){
					notFound,
					func() (*models.User, error) { return nil, errBoom },
				},
				createErr: user.ErrUserExists,
			},
			fetcher: &fakeFetcher{profiles: map[string]*identity.Profile{
				"user_1": profile("user_1", "Jane", "Doe", "jane@example.com"),
			}},
			wantErr:     ErrStoreUnavailable,
			wantFetches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewSyncer(tt.store, tt.fetcher, "google").SyncUser(context.Background(), "user_1")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, u)
			assert.Equal(t, tt.wantFetches, tt.fetcher.calls.Load())
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		first, last, email, want string
	}{
		{"Jane", "Doe", "jane@example.com", "Jane Doe"},
		{"Jane", "", "jane@example.com", "Jane"},
		{"", "Doe", "jane@example.com", "Doe"},
		{" ", " ", "jane@x.com", "jane"},
		{"", "", "no-at-sign", "no-at-sign"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveName(tt.first, tt.last, tt.email))
	}
}
