// AngelaMos | 2026
// session.go

package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/campaignhq/campaign-backend/internal/kvstore"
)

// SessionKey is the key-value slot holding the current-session pointer.
const SessionKey = "campaign_session"

// Session is the process-wide current-session projection. There is exactly
// one; this is not a multi-device session table.
type Session struct {
	UserID string    `json:"userId"`
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.Expiry)
}

func loadSession(kv kvstore.Store) *Session {
	raw, ok, err := kv.Get(SessionKey)
	if err != nil || !ok {
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil
	}

	return &sess
}

func persistSession(kv kvstore.Store, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := kv.Set(SessionKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	return nil
}

func clearSession(kv kvstore.Store) error {
	if err := kv.Delete(SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
