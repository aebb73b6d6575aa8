package auth

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/cli/internal/api"
	authpkg "github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/devserver"
	"github.com/casedesk/cli/internal/loginflow"
	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/session"
)

func newManager(t *testing.T) *authpkg.Manager {
	t.Helper()
	srv := httptest.NewServer(devserver.New("123456", "1234").Router())
	t.Cleanup(srv.Close)

	m := authpkg.NewManager(api.NewClient(srv.URL, 5*time.Second), session.NewStore(session.NewMemoryKV()))
	m.Initialize()
	return m
}

func TestPrompter_InteractiveLogin(t *testing.T) {
	m := newManager(t)
	flow := loginflow.New(m)
	var out bytes.Buffer

	p := &Prompter{In: strings.NewReader("98765 43210\n123456\n1234\n"), Out: &out}
	require.NoError(t, p.Run(context.Background(), flow))

	assert.Equal(t, loginflow.Authenticated, flow.Phase())
	require.True(t, m.IsAuthenticated())
	assert.Equal(t, "9876543210", m.Session().User.Mobile)
	assert.Contains(t, out.String(), "OTP sent to +91 9876543210")
}

func TestPrompter_PresetsUsedOnce(t *testing.T) {
	m := newManager(t)
	flow := loginflow.New(m)
	var out bytes.Buffer

	p := &Prompter{
		In:     strings.NewReader("123456\n"),
		Out:    &out,
		Mobile: "9876543210",
		OTP:    "000000",
		PIN:    "1234",
	}
	require.NoError(t, p.Run(context.Background(), flow))

	assert.True(t, m.IsAuthenticated())
	assert.Contains(t, out.String(), "Invalid OTP")
	assert.NotContains(t, out.String(), "Mobile number:")
	assert.NotContains(t, out.String(), "PIN:")
}

func TestPrompter_ValidationErrorsReprompt(t *testing.T) {
	m := newManager(t)
	flow := loginflow.New(m)
	var out bytes.Buffer

	p := &Prompter{In: strings.NewReader("123\n9876543210\n12\n123456\n1234\n"), Out: &out}
	require.NoError(t, p.Run(context.Background(), flow))

	assert.Contains(t, out.String(), "Please enter a valid 10-digit mobile number")
	assert.Contains(t, out.String(), "Please enter a valid 6-digit OTP")
	assert.True(t, m.IsAuthenticated())
}

func TestPrompter_ChangeNumber(t *testing.T) {
	m := newManager(t)
	flow := loginflow.New(m)
	var out bytes.Buffer

	p := &Prompter{In: strings.NewReader("9876543210\nc\n9123456789\n123456\n1234\n"), Out: &out}
	require.NoError(t, p.Run(context.Background(), flow))

	require.True(t, m.IsAuthenticated())
	assert.Equal(t, "9123456789", m.Session().User.Mobile)
}

func TestPrompter_InputClosed(t *testing.T) {
	m := newManager(t)
	flow := loginflow.New(m)

	p := &Prompter{In: strings.NewReader("9876543210\n"), Out: &bytes.Buffer{}}
	err := p.Run(context.Background(), flow)

	assert.EqualError(t, err, "input closed before login completed")
	assert.Equal(t, loginflow.AwaitingOTP, flow.Phase())
	assert.False(t, m.IsAuthenticated())
}

func TestPartialLoginNotice(t *testing.T) {
	t.Run("stopped at PIN keeps OTP session", func(t *testing.T) {
		m := newManager(t)
		flow := loginflow.New(m)

		p := &Prompter{In: strings.NewReader("9876543210\n123456\n"), Out: &bytes.Buffer{}}
		require.Error(t, p.Run(context.Background(), flow))

		require.True(t, m.IsAuthenticated())
		notice := partialLoginNotice(flow, m)
		assert.Contains(t, notice, "session from OTP verification")
		assert.Contains(t, notice, "Advocate 3210")
	})

	t.Run("stopped at OTP leaves nothing", func(t *testing.T) {
		m := newManager(t)
		flow := loginflow.New(m)

		p := &Prompter{In: strings.NewReader("9876543210\n"), Out: &bytes.Buffer{}}
		require.Error(t, p.Run(context.Background(), flow))

		assert.Empty(t, partialLoginNotice(flow, m))
	})

	t.Run("completed login", func(t *testing.T) {
		m := newManager(t)
		flow := loginflow.New(m)

		p := &Prompter{In: strings.NewReader("9876543210\n123456\n1234\n"), Out: &bytes.Buffer{}}
		require.NoError(t, p.Run(context.Background(), flow))

		assert.Empty(t, partialLoginNotice(flow, m))
	})
}

func TestPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	assert.ErrorIs(t, p.Run(ctx, loginflow.New(newManager(t))), context.Canceled)
}

func TestBuildStatus(t *testing.T) {
	store := session.NewStore(session.NewMemoryKV())
	m := authpkg.NewManager(api.NewClient("http://127.0.0.1:1", time.Second), store)
	m.Initialize()

	t.Run("logged out", func(t *testing.T) {
		report := BuildStatus(m, "http://localhost:5000", time.Now())
		assert.False(t, report.LoggedIn)
		assert.Equal(t, "http://localhost:5000", report.Server)
	})

	t.Run("jwt expiry", func(t *testing.T) {
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		require.NoError(t, store.Save(&models.Session{Token: token, User: models.User{ID: "7", Name: "Jane", Mobile: "9876543210"}}))
		m.Initialize()

		report := BuildStatus(m, "http://localhost:5000", exp.Add(time.Hour))
		assert.True(t, report.LoggedIn)
		assert.Equal(t, "7", report.UserID)
		assert.Equal(t, "Jane", report.User)
		assert.Equal(t, "2030-01-01T00:00:00Z", report.ExpiresAt)
		assert.True(t, report.Expired)
	})
}
