package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casedesk/cli/internal/format"
	"github.com/casedesk/cli/internal/models"
)

// Keys under which a session is persisted
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store loads, saves and clears the persisted session.
type Store struct {
	kv KV
}

// NewStore creates a Store on top of kv
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted session. It reports false when either half is
// missing, when the stored profile is not a user object with an id, or
// when the medium cannot be read. Load never fails.
func (s *Store) Load() (*models.Session, bool) {
	token, ok, err := s.kv.Get(TokenKey)
	if err != nil {
		format.PrintDebug("session: reading token: %v", err)
		return nil, false
	}
	if !ok || token == "" {
		return nil, false
	}

	raw, ok, err := s.kv.Get(UserKey)
	if err != nil {
		format.PrintDebug("session: reading user: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	user, err := decodeUser(raw)
	if err != nil {
		format.PrintDebug("session: ignoring stored user: %v", err)
		return nil, false
	}

	return &models.Session{Token: token, User: *user}, true
}

// Save persists token and user. If the second write fails the previous
// values are restored, so callers see either the new session or the old one.
func (s *Store) Save(sess *models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to save a session without a token")
	}

	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	prevUser, hadUser, err := s.kv.Get(UserKey)
	if err != nil {
		return fmt.Errorf("reading previous session: %w", err)
	}

	if err := s.kv.Set(UserKey, string(userJSON)); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	if err := s.kv.Set(TokenKey, sess.Token); err != nil {
		if rbErr := restore(s.kv, UserKey, prevUser, hadUser); rbErr != nil {
			format.PrintDebug("session: rollback of user failed: %v", rbErr)
		}
		return fmt.Errorf("saving token: %w", err)
	}

	return nil
}

// Clear removes both keys. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	tokenErr := s.kv.Delete(TokenKey)
	userErr := s.kv.Delete(UserKey)
	if tokenErr != nil {
		return fmt.Errorf("clearing token: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("clearing user: %w", userErr)
	}
	return nil
}

func restore(kv KV, key, value string, existed bool) error {
	if existed {
		return kv.Set(key, value)
	}
	return kv.Delete(key)
}

func decodeUser(raw string) (*models.User, error) {
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return nil, fmt.Errorf("stored user is not an object")
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if !user.HasID() {
		return nil, fmt.Errorf("stored user has no id")
	}
	return &user, nil
}
