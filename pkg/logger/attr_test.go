package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestAuthenticatorID(t *testing.T) {
	attr := logger.AuthenticatorID("auth-1")
	require.Equal(t, "authenticator_id", attr.Key)
	assert.Equal(t, "auth-1", attr.Value.String())

	assert.True(t, logger.AuthenticatorID("").Equal(slog.Attr{}))
}

func TestPrincipal(t *testing.T) {
	attr := logger.Principal("credentials:jane@example.com")
	require.Equal(t, "principal", attr.Key)
	assert.Equal(t, "credentials:jane@example.com", attr.Value.String())

	assert.True(t, logger.Principal("").Equal(slog.Attr{}))
}

func TestValidationCodes(t *testing.T) {
	attr := logger.ValidationCodes([]string{"authenticator.expired", "authenticator.fingerprint_mismatch"})
	require.Equal(t, "validation_codes", attr.Key)
	assert.Equal(t, []string{"authenticator.expired", "authenticator.fingerprint_mismatch"}, attr.Value.Any())

	assert.True(t, logger.ValidationCodes(nil).Equal(slog.Attr{}))
}

func TestValidator(t *testing.T) {
	attr := logger.Validator("expiry")
	require.Equal(t, "validator", attr.Key)
	assert.Equal(t, "expiry", attr.Value.String())
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.Any())
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(time.Second)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, time.Second, attr.Value.Duration())
}

func TestComponent(t *testing.T) {
	attr := logger.Component("authn")
	require.Equal(t, "component", attr.Key)
	assert.Equal(t, "authn", attr.Value.String())
}
