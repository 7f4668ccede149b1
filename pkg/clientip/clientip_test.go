package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "cloudflare header wins",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "digitalocean header before forwarded-for",
			headers: map[string]string{
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1, 10.0.0.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "first valid forwarded-for entry",
			headers:    map[string]string{"X-Forwarded-For": "unknown, 203.0.113.5 , 10.0.0.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "203.0.113.5",
		},
		{
			name:       "invalid headers fall through",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip", "X-Real-IP": "198.51.100.9"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.9",
		},
		{
			name:       "remote addr with port",
			remoteAddr: "192.0.2.44:1234",
			expected:   "192.0.2.44",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.0.2.44",
			expected:   "192.0.2.44",
		},
		{
			name:       "ipv4 mapped ipv6 is unmapped",
			headers:    map[string]string{"X-Real-IP": "::ffff:192.0.2.1"},
			remoteAddr: "10.0.0.1:1",
			expected:   "192.0.2.1",
		},
		{
			name:       "zoned addresses are rejected",
			headers:    map[string]string{"X-Real-IP": "fe80::1%eth0"},
			remoteAddr: "10.0.0.1:1",
			expected:   "10.0.0.1",
		},
		{
			name:       "nothing valid",
			remoteAddr: "garbage",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(r))
		})
	}
}

func TestResolve_CustomHeaders(t *testing.T) {
	headers := map[string]string{
		"CF-Connecting-IP": "203.0.113.1",
		"Fly-Client-IP":    "198.51.100.2",
	}
	get := func(name string) string { return headers[name] }

	assert.Equal(t, "198.51.100.2", clientip.Resolve("10.0.0.1:1", get, "Fly-Client-IP"))
	assert.Equal(t, "203.0.113.1", clientip.Resolve("10.0.0.1:1", get))
}

func TestFromPipeline(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	r.Header.Set("X-Forwarded-For", "203.0.113.10")

	req, err := pipeline.FromHTTPRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", clientip.FromPipeline(req))

	rewritten := req.WithHeaders(pipeline.NewHeader("CF-Connecting-IP", "198.51.100.77"))
	assert.Equal(t, "198.51.100.77", clientip.FromPipeline(rewritten))
}

func TestMiddleware(t *testing.T) {
	var got string
	router := chi.NewRouter()
	router.Use(clientip.Middleware)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.8:4000"
	router.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "192.0.2.8", got)
	assert.Empty(t, clientip.GetIPFromContext(t.Context()))
}

func TestLoggerExtractor(t *testing.T) {
	extract := clientip.LoggerExtractor()

	_, ok := extract(t.Context())
	assert.False(t, ok)

	attr, ok := extract(clientip.SetIPToContext(t.Context(), "192.0.2.8"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.8", attr.Value.String())
}

func BenchmarkGetIP(b *testing.B) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "unknown, 203.0.113.5, 10.0.0.1")

	for b.Loop() {
		_ = clientip.GetIP(r)
	}
}
