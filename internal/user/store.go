// AngelaMos | 2026
// store.go

package user

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/kvstore"
)

// UsersKey is the key-value slot holding the serialized user collection.
const UsersKey = "campaign_secure_users"

// Store owns the in-memory user collection and mirrors every mutation to the
// key-value slot. Records are unique on id and on case-insensitive email.
// All reads return deep copies; callers mutate a copy and commit it with
// Update.
type Store struct {
	mu    sync.Mutex
	kv    kvstore.Store
	users []*SecureUser
}

// NewStore rehydrates the collection from the key-value store. A missing or
// undecodable slot installs the deterministic seed set and persists it.
func NewStore(kv kvstore.Store) (*Store, error) {
	s := &Store{kv: kv}

	raw, ok, err := kv.Get(UsersKey)
	if err != nil {
		return nil, fmt.Errorf("read user collection: %w", err)
	}

	if ok {
		var users []*SecureUser
		if err := json.Unmarshal([]byte(raw), &users); err == nil {
			s.users = users
			return s, nil
		}
		// fall through: corrupt slot gets reseeded
	}

	seed, err := SeedUsers()
	if err != nil {
		return nil, err
	}
	s.users = seed

	if err := s.flushLocked(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) flushLocked() error {
	raw, err := json.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("encode user collection: %w", err)
	}

	if err := s.kv.Set(UsersKey, string(raw)); err != nil {
		return fmt.Errorf("persist user collection: %w", err)
	}

	return nil
}

func (s *Store) Insert(u *SecureUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.ID == u.ID {
			return fmt.Errorf("insert user %s: %w", u.ID, core.ErrDuplicateKey)
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("insert user %s: %w", u.Email, core.ErrDuplicateKey)
		}
	}

	s.users = append(s.users, u.Clone())
	return s.flushLocked()
}

func (s *Store) Update(u *SecureUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID == u.ID {
			s.users[i] = u.Clone()
			return s.flushLocked()
		}
	}

	return fmt.Errorf("update user %s: %w", u.ID, core.ErrNotFound)
}

// Delete removes the record. Deleting an absent id is not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.users {
		if existing.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.flushLocked()
		}
	}

	return nil
}

// ReplaceAll swaps the whole collection, used for persistence round-trips.
func (s *Store) ReplaceAll(users []*SecureUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := make([]*SecureUser, 0, len(users))
	for _, u := range users {
		replacement = append(replacement, u.Clone())
	}
	s.users = replacement

	return s.flushLocked()
}

func (s *Store) GetByID(id string) (*SecureUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}

	return nil, fmt.Errorf("get user %s: %w", id, core.ErrNotFound)
}

// GetByEmail looks up by case-insensitive email.
func (s *Store) GetByEmail(email string) (*SecureUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}

	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

// GetByRegistrationToken looks up the record holding an outstanding invite
// token. Expiry is the caller's concern.
func (s *Store) GetByRegistrationToken(token string) (*SecureUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.RegistrationToken != "" && u.RegistrationToken == token {
			return u.Clone(), nil
		}
	}

	return nil, fmt.Errorf("get user by token: %w", core.ErrNotFound)
}

func (s *Store) ByStatus(status Status) []*SecureUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*SecureUser
	for _, u := range s.users {
		if u.Status == status {
			matched = append(matched, u.Clone())
		}
	}

	return matched
}

func (s *Store) All() []*SecureUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*SecureUser, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u.Clone())
	}

	return all
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

// CountByStatus returns record counts keyed by status, for the admin stats
// surface.
func (s *Store) CountByStatus() map[Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[Status]int, 3)
	for _, u := range s.users {
		counts[u.Status]++
	}

	return counts
}
