package cookie_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/cookie"
	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

const (
	currentSecret = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret     = "this-is-old-very-long-secret-key-32-chars-ok"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

func requestWith(t *testing.T, cookies ...pipeline.Cookie) *pipeline.Request[struct{}] {
	t.Helper()
	u, err := url.Parse("https://example.com/")
	require.NoError(t, err)
	req, err := pipeline.NewRequest(struct{}{}, http.MethodGet, u)
	require.NoError(t, err)
	return req.WithCookies(cookies...)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{"no secrets", nil, cookie.ErrNoSecret},
		{"empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"secret too short", []string{"short"}, cookie.ErrSecretTooShort},
		{"valid secret", []string{currentSecret}, nil},
		{"rotation", []string{currentSecret, oldSecret}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_Defaults(t *testing.T) {
	m, err := cookie.New([]string{currentSecret}, cookie.WithSecure(true), cookie.WithDomain("example.com"))
	require.NoError(t, err)

	c := m.Cookie("theme", "dark", cookie.WithMaxAge(60))
	assert.Equal(t, pipeline.Cookie{
		Name:     "theme",
		Value:    "dark",
		Domain:   "example.com",
		Path:     "/",
		MaxAge:   60,
		Secure:   true,
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, c)

	again := m.Cookie("theme", "light")
	assert.Zero(t, again.MaxAge, "per-call options must not leak into defaults")
}

func TestManager_Signed(t *testing.T) {
	m := newManager(t, currentSecret)

	t.Run("round trip", func(t *testing.T) {
		req := requestWith(t, m.Signed("token", "auth-123"))
		got, err := m.GetSigned(req, "token")
		require.NoError(t, err)
		assert.Equal(t, "auth-123", got)
	})

	t.Run("value stays readable", func(t *testing.T) {
		c := m.Signed("token", "auth-123")
		assert.NotEqual(t, "auth-123", c.Value)
		assert.Contains(t, c.Value, "|")
	})

	t.Run("missing cookie", func(t *testing.T) {
		_, err := m.GetSigned(requestWith(t), "token")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered value", func(t *testing.T) {
		c := m.Signed("token", "auth-123")
		other := m.Signed("token", "auth-999")
		_, sig, _ := strings.Cut(c.Value, "|")
		encoded, _, _ := strings.Cut(other.Value, "|")
		c.Value = encoded + "|" + sig

		_, err := m.GetSigned(requestWith(t, c), "token")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, v := range []string{"no-separator", "!!!|sig", ""} {
			_, err := m.Verify(v)
			assert.ErrorIs(t, err, cookie.ErrInvalidFormat, v)
		}
	})

	t.Run("signed with unknown secret", func(t *testing.T) {
		foreign := newManager(t, oldSecret)
		_, err := m.Verify(foreign.Sign("auth-123"))
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})
}

func TestManager_Encrypted(t *testing.T) {
	m := newManager(t, currentSecret)

	c, err := m.Encrypted("prefs", `{"lang":"uk"}`)
	require.NoError(t, err)
	assert.NotContains(t, c.Value, "lang")

	got, err := m.GetEncrypted(requestWith(t, c), "prefs")
	require.NoError(t, err)
	assert.Equal(t, `{"lang":"uk"}`, got)

	t.Run("nonce is fresh for every call", func(t *testing.T) {
		a, err := m.Encrypt("same")
		require.NoError(t, err)
		b, err := m.Encrypt("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		sealed, err := m.Encrypt("value")
		require.NoError(t, err)
		raw, err := base64.RawURLEncoding.DecodeString(sealed)
		require.NoError(t, err)
		raw[len(raw)/2] ^= 0xff

		_, err = m.Decrypt(base64.RawURLEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("short input", func(t *testing.T) {
		_, err := m.Decrypt("AAAA")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("signing and encryption keys differ", func(t *testing.T) {
		_, err := m.Decrypt(m.Sign("value"))
		assert.Error(t, err)
	})
}

func TestManager_SecretRotation(t *testing.T) {
	old := newManager(t, oldSecret)
	rotated := newManager(t, currentSecret, oldSecret)

	v, err := rotated.Verify(old.Sign("auth-1"))
	require.NoError(t, err)
	assert.Equal(t, "auth-1", v)

	sealed, err := old.Encrypt("secret")
	require.NoError(t, err)
	plain, err := rotated.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "secret", plain)

	_, err = old.Verify(rotated.Sign("auth-1"))
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature, "new values are written with the newest secret")
}

func TestResponseHelpers(t *testing.T) {
	m := newManager(t, currentSecret)
	resp := pipeline.NewResponse(struct{}{})

	signed := cookie.SetSigned(m, resp, "token", "auth-1")
	_, ok := resp.Cookie("token")
	assert.False(t, ok, "original response is not modified")

	c, ok := signed.Cookie("token")
	require.True(t, ok)
	v, err := m.Verify(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "auth-1", v)

	encrypted, err := cookie.SetEncrypted(m, signed, "prefs", "x")
	require.NoError(t, err)
	assert.Len(t, encrypted.Cookies(), 2)

	deleted := cookie.Delete(m, encrypted, "token")
	c, ok = deleted.Cookie("token")
	require.True(t, ok)
	assert.Equal(t, -1, c.MaxAge)
	assert.Empty(t, c.Value)
	assert.Len(t, deleted.Cookies(), 2, "delete replaces the cookie by name")
}

func TestWriteThroughHTTP(t *testing.T) {
	m := newManager(t, currentSecret)

	rec := httptest.NewRecorder()
	resp := cookie.SetSigned(m, pipeline.FromResponseWriter(rec), "token", "auth-1")
	pipeline.WriteHTTP(resp)

	res := rec.Result()
	defer res.Body.Close()
	require.Len(t, res.Cookies(), 1)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(res.Cookies()[0])
	req, err := pipeline.FromHTTPRequest(r)
	require.NoError(t, err)

	v, err := m.GetSigned(req, "token")
	require.NoError(t, err)
	assert.Equal(t, "auth-1", v)
}

func TestNewFromConfig(t *testing.T) {
	cfg := cookie.DefaultConfig()
	cfg.Secrets = []string{currentSecret, " " + oldSecret, ""}
	cfg.Domain = "example.com"

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	c := m.Cookie("a", "b")
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)

	old, err := cookie.New([]string{oldSecret})
	require.NoError(t, err)
	v, err := m.Verify(old.Sign("rotated"))
	require.NoError(t, err)
	assert.Equal(t, "rotated", v)

	cfg.Secure = false
	m, err = cookie.NewFromConfig(cfg)
	require.NoError(t, err)
	assert.False(t, m.Cookie("a", "b").Secure)

	_, err = cookie.NewFromConfig(cookie.DefaultConfig())
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

func BenchmarkManager_Verify(b *testing.B) {
	m, _ := cookie.New([]string{currentSecret, oldSecret})
	signed := m.Sign("auth-123")

	for b.Loop() {
		_, _ = m.Verify(signed)
	}
}
