package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCookies(t *testing.T, now func() time.Time) *sessionCookies {
	t.Helper()
	key, err := deriveKey([]byte("secret"), keyInfoCookie)
	require.NoError(t, err)
	return &sessionCookies{name: "sc", key: key, maxAge: time.Hour, now: now}
}

func TestDeriveKeyPerPurpose(t *testing.T) {
	a, err := deriveKey([]byte("secret"), keyInfoCookie)
	require.NoError(t, err)
	b, err := deriveKey([]byte("secret"), keyInfoGameLog)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	again, err := deriveKey([]byte("secret"), keyInfoCookie)
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func TestCookieRoundTrip(t *testing.T) {
	c := testCookies(t, time.Now)
	token, exp, err := c.sign("sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	sid, err := c.parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
}

func TestCookieRejectsOtherKeyAndExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := testCookies(t, func() time.Time { return now })
	token, _, err := c.sign("sid-1")
	require.NoError(t, err)

	other := testCookies(t, func() time.Time { return now })
	other.key = []byte("another key entirely, 32 bytes!!")
	_, err = other.parse(token)
	assert.Error(t, err)

	now = now.Add(2 * time.Hour)
	_, err = c.parse(token)
	assert.Error(t, err, "expired token")
}

func TestEnsureIssuesAndReusesCookie(t *testing.T) {
	c := testCookies(t, time.Now)
	c.secure = true

	rr := httptest.NewRecorder()
	sid := c.ensure(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, sid)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, "sc", ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sc", Value: ck.Value})
	rr = httptest.NewRecorder()
	assert.Equal(t, sid, c.ensure(rr, req))
	assert.Empty(t, rr.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sc", Value: "not-a-jwt"})
	rr = httptest.NewRecorder()
	assert.NotEqual(t, sid, c.ensure(rr, req))
	assert.Len(t, rr.Result().Cookies(), 1)
}
