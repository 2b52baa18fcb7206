// AngelaMos | 2026
// store_test.go

package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/kvstore"
)

func newTestStore(t *testing.T) (*Store, kvstore.Store) {
	t.Helper()

	kv := kvstore.NewMemory()
	store, err := NewStore(kv)
	require.NoError(t, err)

	return store, kv
}

func TestNewStore_SeedsWhenEmpty(t *testing.T) {
	store, kv := newTestStore(t)

	assert.Equal(t, 3, store.Count())

	admin, err := store.GetByEmail("admin@campaign.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, StatusActive, admin.Status)
	assert.True(t, admin.PasswordSet)

	// Seed passwords verify against the documented default.
	ok, err := core.VerifyPassword(
		DefaultSeedPassword, admin.PasswordHash, admin.PasswordSalt)
	require.NoError(t, err)
	assert.True(t, ok)

	// The seed set was flushed.
	_, found, err := kv.Get(UsersKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestNewStore_RehydratesFromKV(t *testing.T) {
	kv := kvstore.NewMemory()

	first, err := NewStore(kv)
	require.NoError(t, err)

	record, err := first.GetByEmail("volunteer@campaign.com")
	require.NoError(t, err)
	record.FirstName = "Renamed"
	require.NoError(t, first.Update(record))

	second, err := NewStore(kv)
	require.NoError(t, err)

	reloaded, err := second.GetByEmail("volunteer@campaign.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.FirstName)
	assert.Equal(t, 3, second.Count())
}

func TestNewStore_CorruptSlotReseeds(t *testing.T) {
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(UsersKey, "{definitely not an array"))

	store, err := NewStore(kv)
	require.NoError(t, err)

	assert.Equal(t, 3, store.Count())

	raw, found, err := kv.Get(UsersKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotEqual(t, "{definitely not an array", raw)
}

func TestStore_InsertDuplicates(t *testing.T) {
	store, _ := newTestStore(t)

	fresh := &SecureUser{
		ID:        "99",
		Email:     "fresh@campaign.com",
		FirstName: "Fresh",
		LastName:  "Face",
		Role:      RoleVolunteer,
		Status:    StatusPendingApproval,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Insert(fresh))

	dupID := &SecureUser{ID: "99", Email: "other@campaign.com"}
	err := store.Insert(dupID)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	// Email uniqueness is case-insensitive.
	dupEmail := &SecureUser{ID: "100", Email: "FRESH@Campaign.COM"}
	err = store.Insert(dupEmail)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestStore_GetByEmailCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)

	u, err := store.GetByEmail("ADMIN@CAMPAIGN.COM")
	require.NoError(t, err)
	assert.Equal(t, "admin@campaign.com", u.Email)
}

func TestStore_UpdateMissing(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Update(&SecureUser{ID: "does-not-exist"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Delete("3"))
	assert.Equal(t, 2, store.Count())

	assert.NoError(t, store.Delete("3"))
	assert.Equal(t, 2, store.Count())
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	store, _ := newTestStore(t)

	u, err := store.GetByID("1")
	require.NoError(t, err)

	u.FirstName = "Mutated"

	again, err := store.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, "John", again.FirstName)
}

func TestStore_GetByRegistrationToken(t *testing.T) {
	store, _ := newTestStore(t)

	expiry := time.Now().Add(48 * time.Hour)
	invited := &SecureUser{
		ID:                "42",
		Email:             "invited@campaign.com",
		Role:              RoleVolunteer,
		Status:            StatusPendingApproval,
		RegistrationToken: "tok-42",
		TokenExpiry:       &expiry,
		CreatedAt:         time.Now(),
	}
	require.NoError(t, store.Insert(invited))

	found, err := store.GetByRegistrationToken("tok-42")
	require.NoError(t, err)
	assert.Equal(t, "42", found.ID)

	_, err = store.GetByRegistrationToken("")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_CountByStatus(t *testing.T) {
	store, _ := newTestStore(t)

	pending := &SecureUser{
		ID:        "50",
		Email:     "pending@campaign.com",
		Role:      RoleVolunteer,
		Status:    StatusPendingApproval,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Insert(pending))

	counts := store.CountByStatus()
	assert.Equal(t, 3, counts[StatusActive])
	assert.Equal(t, 1, counts[StatusPendingApproval])
}

func TestSecureUser_PersistenceRoundTrip(t *testing.T) {
	kv := kvstore.NewMemory()

	first, err := NewStore(kv)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	locked := now.Add(15 * time.Minute)

	record, err := first.GetByID("2")
	require.NoError(t, err)
	record.LoginAttempts = 4
	record.LockedUntil = &locked
	record.LastLogin = &now
	record.SessionToken = "sess-tok"
	record.SessionExpiry = &locked
	require.NoError(t, first.Update(record))

	second, err := NewStore(kv)
	require.NoError(t, err)

	reloaded, err := second.GetByID("2")
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.LoginAttempts)
	require.NotNil(t, reloaded.LockedUntil)
	assert.True(t, locked.Equal(*reloaded.LockedUntil))
	assert.Equal(t, "sess-tok", reloaded.SessionToken)
	require.NotNil(t, reloaded.LastLogin)
	assert.True(t, now.Equal(*reloaded.LastLogin))
}

func TestRole_CanCreate(t *testing.T) {
	assert.True(t, RoleAdmin.CanCreate(RoleAdmin))
	assert.True(t, RoleAdmin.CanCreate(RoleSupervisor))
	assert.True(t, RoleAdmin.CanCreate(RoleVolunteer))

	assert.False(t, RoleSupervisor.CanCreate(RoleAdmin))
	assert.False(t, RoleSupervisor.CanCreate(RoleSupervisor))
	assert.True(t, RoleSupervisor.CanCreate(RoleVolunteer))

	assert.False(t, RoleVolunteer.CanCreate(RoleVolunteer))

	assert.False(t, RoleAdmin.CanCreate(Role("owner")))
}

func TestToUserResponse_OmitsSecrets(t *testing.T) {
	store, _ := newTestStore(t)

	u, err := store.GetByID("1")
	require.NoError(t, err)
	u.SessionToken = "secret-session"
	u.RegistrationToken = "secret-invite"

	resp := ToUserResponse(u)
	assert.Equal(t, u.ID, resp.ID)
	assert.Equal(t, u.Email, resp.Email)
	assert.True(t, resp.PasswordSet)
}
