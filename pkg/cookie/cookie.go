package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/crypto/hkdf"

	"github.com/dmitrymomot/authgate/pkg/pipeline"
)

const minSecretLength = 32

var (
	signingInfo    = []byte("authgate/cookie/signing")
	encryptionInfo = []byte("authgate/cookie/encryption")
)

// keySet holds the keys derived from one secret.
type keySet struct {
	sign []byte
	aead cipher.AEAD
}

// Manager builds and reads signed or encrypted cookies.
// The first secret is used for writing; all secrets are accepted for reading,
// which allows rotation.
type Manager struct {
	keys     []keySet
	defaults Options
}

// Reader is satisfied by *pipeline.Request[R] for any native request type.
type Reader interface {
	Cookie(name string) (pipeline.Cookie, bool)
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([]keySet, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		ks, err := deriveKeys(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, ks)
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{keys: keys, defaults: defaults}, nil
}

func deriveKeys(secret string) (keySet, error) {
	sign := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, signingInfo), sign); err != nil {
		return keySet{}, err
	}

	encKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, encryptionInfo), encKey); err != nil {
		return keySet{}, err
	}
	block, err := aes.NewCipher(encKey)
	if err != nil {
		return keySet{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return keySet{}, err
	}

	return keySet{sign: sign, aead: aead}, nil
}

// Cookie builds a plain cookie with the manager defaults and opts applied.
func (m *Manager) Cookie(name, value string, opts ...Option) pipeline.Cookie {
	o := applyOptions(m.defaults, opts)
	return pipeline.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HTTPOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
}

// Signed builds a cookie whose value carries an HMAC-SHA256 signature.
func (m *Manager) Signed(name, value string, opts ...Option) pipeline.Cookie {
	return m.Cookie(name, m.Sign(value), opts...)
}

// Encrypted builds a cookie whose value is sealed with AES-256-GCM.
func (m *Manager) Encrypted(name, value string, opts ...Option) (pipeline.Cookie, error) {
	sealed, err := m.Encrypt(value)
	if err != nil {
		return pipeline.Cookie{}, err
	}
	return m.Cookie(name, sealed, opts...), nil
}

// Expired builds a cookie that makes the client drop name.
func (m *Manager) Expired(name string) pipeline.Cookie {
	c := m.Cookie(name, "")
	c.MaxAge = -1
	return c
}

func (m *Manager) Get(r Reader, name string) (string, error) {
	c, ok := r.Cookie(name)
	if !ok {
		return "", ErrCookieNotFound
	}
	return c.Value, nil
}

func (m *Manager) GetSigned(r Reader, name string) (string, error) {
	v, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.Verify(v)
}

func (m *Manager) GetEncrypted(r Reader, name string) (string, error) {
	v, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.Decrypt(v)
}

// Sign returns base64(value) + "|" + base64(hmac).
func (m *Manager) Sign(value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "|" + m.keys[0].mac([]byte(value))
}

func (k keySet) mac(value []byte) string {
	h := hmac.New(sha256.New, k.sign)
	h.Write(value)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Verify checks a value produced by Sign against every secret.
func (m *Manager) Verify(signed string) (string, error) {
	encoded, sig, ok := strings.Cut(signed, "|")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal([]byte(sig), []byte(k.mac(value))) {
			return string(value), nil
		}
	}

	return "", ErrInvalidSignature
}

// Encrypt seals value under the current secret. A fresh random nonce is
// prepended to the ciphertext.
func (m *Manager) Encrypt(value string) (string, error) {
	aead := m.keys[0].aead
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(aead.Seal(nonce, nonce, []byte(value), nil)), nil
}

// Decrypt opens a value produced by Encrypt with any known secret.
func (m *Manager) Decrypt(sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		n := k.aead.NonceSize()
		if len(data) < n {
			return "", ErrInvalidFormat
		}
		if plain, err := k.aead.Open(nil, data[:n], data[n:], nil); err == nil {
			return string(plain), nil
		}
	}

	return "", ErrDecryptionFailed
}

// SetSigned merges a signed cookie into resp.
func SetSigned[W any](m *Manager, resp *pipeline.Response[W], name, value string, opts ...Option) *pipeline.Response[W] {
	return resp.WithCookies(m.Signed(name, value, opts...))
}

// SetEncrypted merges an encrypted cookie into resp.
func SetEncrypted[W any](m *Manager, resp *pipeline.Response[W], name, value string, opts ...Option) (*pipeline.Response[W], error) {
	c, err := m.Encrypted(name, value, opts...)
	if err != nil {
		return resp, err
	}
	return resp.WithCookies(c), nil
}

// Delete merges an expiring cookie for name into resp.
func Delete[W any](m *Manager, resp *pipeline.Response[W], name string) *pipeline.Response[W] {
	return resp.WithCookies(m.Expired(name))
}
