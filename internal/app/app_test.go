package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/config"
	"github.com/casedesk/cli/internal/devserver"
	"github.com/casedesk/cli/internal/loginflow"
	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/session"
	"github.com/casedesk/cli/internal/utils"
)

func testConfig(url string) *config.Config {
	cfg := config.Defaults()
	cfg.Server.URL = url
	cfg.Session = config.SessionConfig{Backend: config.BackendMemory}
	return &cfg
}

// scriptedBackend answers the three auth endpoints like the scenarios describe
func scriptedBackend(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"abc","user":{"id":1,"name":"Jane"}}`))
	})
	mux.HandleFunc("/api/auth/pin-login", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid PIN"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScenarios_MobileOTPThenRejectedPIN(t *testing.T) {
	var calls atomic.Int32
	srv := scriptedBackend(t, &calls)
	kv := session.NewMemoryKV()
	a := New(testConfig(srv.URL), kv, nil)
	ctx := context.Background()

	flow := loginflow.New(a.Manager)

	// mobile -> OTP requested
	flow.SetMobile("9876543210")
	require.NoError(t, flow.Submit(ctx))
	assert.Equal(t, loginflow.AwaitingOTP, flow.Phase())

	// OTP -> session stored
	flow.SetOTP("123456")
	require.NoError(t, flow.Submit(ctx))
	assert.Equal(t, loginflow.AwaitingPIN, flow.Phase())
	token, found, err := kv.Get(session.TokenKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "abc", token)

	// PIN rejected -> stays, message shown
	flow.SetPIN("0000")
	require.Error(t, flow.Submit(ctx))
	assert.Equal(t, loginflow.AwaitingPIN, flow.Phase())
	assert.Equal(t, "Invalid PIN", flow.Error())

	assert.Equal(t, int32(3), calls.Load())
}

func TestScenario_FreshStartRedirectsToLogin(t *testing.T) {
	a := New(testConfig("http://127.0.0.1:1"), session.NewMemoryKV(), nil)

	assert.False(t, a.Manager.IsAuthenticated())
	err := a.Require(auth.DashboardRoute)
	assert.ErrorIs(t, err, utils.ErrNotLoggedIn)
	assert.NoError(t, a.Require(auth.LoginRoute))
}

func TestScenario_CorruptStoredUserBehavesLikeFreshStart(t *testing.T) {
	kv := session.NewMemoryKV()
	kv.Set(session.TokenKey, "abc")
	kv.Set(session.UserKey, `{"id":1,"name":"Ja`)

	a := New(testConfig("http://127.0.0.1:1"), kv, nil)

	assert.False(t, a.Manager.IsAuthenticated())
	assert.ErrorIs(t, a.Require(auth.CasesRoute), utils.ErrNotLoggedIn)
}

func TestRequire_AuthenticatedLoginRedirects(t *testing.T) {
	kv := session.NewMemoryKV()
	kv.Set(session.TokenKey, "abc")
	kv.Set(session.UserKey, `{"id":1,"name":"Jane"}`)

	a := New(testConfig("http://127.0.0.1:1"), kv, nil)

	assert.NoError(t, a.Require(auth.CasesRoute))
	assert.Error(t, a.Require(auth.LoginRoute))
}

func TestFullLoginAgainstDevserver(t *testing.T) {
	dev := devserver.New("123456", "1234")
	srv := httptest.NewServer(dev.Router())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "session.db")
	cfg := testConfig(srv.URL)
	cfg.Session = config.SessionConfig{Backend: config.BackendBolt, Path: path}

	a, err := Open(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	flow := loginflow.New(a.Manager)
	flow.SetMobile("9876543210")
	require.NoError(t, flow.Submit(ctx))
	flow.SetOTP("123456")
	require.NoError(t, flow.Submit(ctx))
	otpToken := a.Manager.Token()
	flow.SetPIN("1234")
	require.NoError(t, flow.Submit(ctx))
	require.Equal(t, loginflow.Authenticated, flow.Phase())
	assert.NotEqual(t, otpToken, a.Manager.Token(), "PIN login refreshes the token")
	require.NoError(t, a.Close())

	// a new process picks the session up
	a, err = Open(cfg)
	require.NoError(t, err)
	defer a.Close()
	require.True(t, a.Manager.IsAuthenticated())

	cases, err := a.Client.ListCases(ctx, a.Manager.Token())
	require.NoError(t, err)
	assert.Len(t, cases, len(devserver.FixtureCases()))
}

func TestRevokedTokenTriggersReauth(t *testing.T) {
	dev := devserver.New("123456", "1234")
	srv := httptest.NewServer(dev.Router())
	defer srv.Close()

	a := New(testConfig(srv.URL), session.NewMemoryKV(), nil)
	ctx := context.Background()
	require.True(t, a.Manager.SendOTP(ctx, "9876543210").Success)
	require.True(t, a.Manager.LoginWithOTP(ctx, "9876543210", "123456").Success)

	reauth := false
	a.Manager.OnReauthRequired = func() { reauth = true }

	dev.Revoke(a.Manager.Token())
	_, err := a.Client.ListHearings(ctx, a.Manager.Token())

	assert.True(t, errors.Is(err, utils.ErrUnauthorized))
	assert.True(t, reauth)
	assert.False(t, a.Manager.IsAuthenticated())
}

func TestOpen_RejectsBadURL(t *testing.T) {
	_, err := Open(testConfig("not a url"))
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := testConfig("http://localhost:5000")
	cfg.Session.Backend = "carrier-pigeon"
	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestSessionRoundTripIsJSONProfile(t *testing.T) {
	kv := session.NewMemoryKV()
	a := New(testConfig("http://127.0.0.1:1"), kv, nil)
	require.NoError(t, a.Store.Save(&models.Session{Token: "abc", User: models.User{ID: "1", Name: "Jane"}}))

	raw, _, _ := kv.Get(session.UserKey)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "Jane", decoded["name"])
}
