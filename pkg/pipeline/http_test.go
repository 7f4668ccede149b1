package pipeline_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

func TestFromHTTPRequest(t *testing.T) {
	t.Run("resolves absolute uri", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/account?tab=security", nil)

		req, err := pipeline.FromHTTPRequest(r)
		require.NoError(t, err)

		assert.Equal(t, "http://example.com/account?tab=security", req.URI().String())
		assert.False(t, req.IsSecure())
		assert.Same(t, r, req.Unbox())
	})

	t.Run("uses forwarded proto", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-Proto", "https")

		req, err := pipeline.FromHTTPRequest(r)
		require.NoError(t, err)
		assert.True(t, req.IsSecure())
	})

	t.Run("tls request is secure", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)

		req, err := pipeline.FromHTTPRequest(r)
		require.NoError(t, err)
		assert.True(t, req.IsSecure())
	})

	t.Run("keeps query order", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/search?z=1&a=2&z=3&empty=", nil)

		req, err := pipeline.FromHTTPRequest(r)
		require.NoError(t, err)

		z, ok := req.QueryParam("z")
		require.True(t, ok)
		assert.Equal(t, []string{"1", "3"}, z)
		assert.Equal(t, "z=1&z=3&a=2&empty=", req.RawQueryString())
	})

	t.Run("copies headers and cookies", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Add("X-Multi", "a")
		r.Header.Add("X-Multi", "b")
		r.Header.Set("User-Agent", "TestBot/1.0")
		r.AddCookie(&http.Cookie{Name: "sid", Value: "old"})
		r.AddCookie(&http.Cookie{Name: "sid", Value: "new"})
		r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})

		req, err := pipeline.FromHTTPRequest(r)
		require.NoError(t, err)

		h, ok := req.Header("x-multi")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, h.Values)

		sid, ok := req.Cookie("sid")
		require.True(t, ok)
		assert.Equal(t, "new", sid.Value)
		assert.Len(t, req.Cookies(), 2)
	})

	t.Run("construction errors", func(t *testing.T) {
		_, err := pipeline.FromHTTPRequest(nil)
		assert.ErrorIs(t, err, pipeline.ErrNilRequest)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = ""
		_, err = pipeline.FromHTTPRequest(r)
		assert.ErrorIs(t, err, pipeline.ErrRelativeURI)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.URL.RawQuery = "bad=%zz"
		_, err = pipeline.FromHTTPRequest(r)
		assert.ErrorIs(t, err, pipeline.ErrMalformedQuery)
	})
}

func TestFromHTTPRequest_FingerprintMatchesNetHTTP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0")
	r.Header.Add("Accept-Language", "en")
	r.Header.Add("Accept-Language", "de")
	r.Header.Set("Accept-Charset", "utf-8")

	req, err := pipeline.FromHTTPRequest(r)
	require.NoError(t, err)

	assert.Equal(t, fingerprint.FromRequest(r), req.Fingerprint())

	h, err := fingerprint.NewKeyed([]byte("secret"))
	require.NoError(t, err)
	assert.Equal(t, fingerprint.FromRequestWith(h, r), req.FingerprintHash(h))
}
