package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/cli/internal/models"
)

var ErrKVFailed = errors.New("session storage unavailable")

// failingKV wraps a KV and fails Set for one key
type failingKV struct {
	KV
	failSetKey string
	failGet    bool
}

func (f *failingKV) Set(key, value string) error {
	if key == f.failSetKey {
		return ErrKVFailed
	}
	return f.KV.Set(key, value)
}

func (f *failingKV) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, ErrKVFailed
	}
	return f.KV.Get(key)
}

func mustUser(raw string) models.User {
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		panic(err)
	}
	return u
}

func sampleSession() *models.Session {
	return &models.Session{Token: "abc", User: mustUser(`{"id":1,"name":"Jane"}`)}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewStore(NewMemoryKV())

	require.NoError(t, s.Save(sampleSession()))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, sampleSession(), got)
}

func TestStore_ClearThenLoad(t *testing.T) {
	s := NewStore(NewMemoryKV())
	require.NoError(t, s.Save(sampleSession()))

	require.NoError(t, s.Clear())

	got, ok := s.Load()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := NewStore(NewMemoryKV())
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestStore_LoadMissingHalves(t *testing.T) {
	t.Run("token only", func(t *testing.T) {
		kv := NewMemoryKV()
		kv.Set(TokenKey, "abc")
		_, ok := NewStore(kv).Load()
		assert.False(t, ok)
	})

	t.Run("user only", func(t *testing.T) {
		kv := NewMemoryKV()
		kv.Set(UserKey, `{"id":1,"name":"Jane"}`)
		_, ok := NewStore(kv).Load()
		assert.False(t, ok)
	})
}

func TestStore_LoadCorruptUser(t *testing.T) {
	for _, raw := range []string{`{"id":1,"name":`, `not json`, `[]`, `"Jane"`, `null`, `{"id":true}`,
		`{}`, `{"unrelated":true}`, `{"id":""}`, `{"id":null,"name":"Jane"}`} {
		t.Run(raw, func(t *testing.T) {
			kv := NewMemoryKV()
			kv.Set(TokenKey, "abc")
			kv.Set(UserKey, raw)

			got, ok := NewStore(kv).Load()
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestStore_LoadReadFailure(t *testing.T) {
	kv := &failingKV{KV: NewMemoryKV(), failGet: true}
	_, ok := NewStore(kv).Load()
	assert.False(t, ok)
}

func TestStore_SaveRejectsEmptyToken(t *testing.T) {
	s := NewStore(NewMemoryKV())
	err := s.Save(&models.Session{User: models.User{ID: "1"}})
	assert.Error(t, err)

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestStore_SaveFailureKeepsPreviousSession(t *testing.T) {
	mem := NewMemoryKV()
	require.NoError(t, NewStore(mem).Save(sampleSession()))

	s := NewStore(&failingKV{KV: mem, failSetKey: TokenKey})
	err := s.Save(&models.Session{Token: "new", User: models.User{ID: "2", Name: "Ravi"}})
	require.ErrorIs(t, err, ErrKVFailed)

	got, ok := NewStore(mem).Load()
	require.True(t, ok)
	assert.Equal(t, sampleSession(), got)
}

func TestStore_SaveFailureOnEmptyStoreLeavesItEmpty(t *testing.T) {
	mem := NewMemoryKV()
	s := NewStore(&failingKV{KV: mem, failSetKey: TokenKey})

	require.Error(t, s.Save(sampleSession()))

	_, found, _ := mem.Get(UserKey)
	assert.False(t, found)
}

func TestStore_SaveFailureOnUserWrite(t *testing.T) {
	mem := NewMemoryKV()
	s := NewStore(&failingKV{KV: mem, failSetKey: UserKey})

	require.Error(t, s.Save(sampleSession()))

	_, ok := NewStore(mem).Load()
	assert.False(t, ok)
}

func TestStore_StringIDRoundTrip(t *testing.T) {
	s := NewStore(NewMemoryKV())
	require.NoError(t, s.Save(&models.Session{Token: "abc", User: mustUser(`{"id":"64f1a2b3c4","name":"Jane"}`)}))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, models.UserID("64f1a2b3c4"), got.User.ID)
	assert.Equal(t, "Jane", got.User.Name)
}

func TestStore_UnknownProfileFieldsSurvive(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv)
	profile := `{"id":1,"name":"Jane","chamber":"Court 4","bar":{"state":"MH","number":"1234"}}`
	require.NoError(t, s.Save(&models.Session{Token: "abc", User: mustUser(profile)}))

	raw, found, err := kv.Get(UserKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, profile, raw)

	got, ok := s.Load()
	require.True(t, ok)
	require.NoError(t, s.Save(got))

	raw, _, _ = kv.Get(UserKey)
	assert.JSONEq(t, profile, raw, "profile is unchanged after load and save")
}

func TestStore_SaveCodeBuiltUser(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, NewStore(kv).Save(&models.Session{Token: "abc", User: models.User{ID: "7", Name: "Jane"}}))

	raw, _, _ := kv.Get(UserKey)
	assert.JSONEq(t, `{"id":7,"name":"Jane"}`, raw)
}
