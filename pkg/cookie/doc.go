// Package cookie builds and reads signed or encrypted cookies on top of the
// pipeline package.
//
// A Manager is created with one or more secrets of at least 32 characters.
// Independent HMAC-SHA256 and AES-256-GCM keys are derived from every secret
// with HKDF. Values are always written with the first secret and read with
// any of them, so secrets can be rotated by prepending a new one.
//
// Reading works on anything exposing Cookie(name), which every
// pipeline.Request does:
//
//	req, err := pipeline.FromHTTPRequest(r)
//	if err != nil {
//	    return err
//	}
//	token, err := cookies.GetSigned(req, "auth")
//
// Writing produces pipeline cookies, merged into a response pipeline with the
// generic helpers:
//
//	resp := pipeline.FromResponseWriter(w)
//	resp = cookie.SetSigned(cookies, resp, "auth", token, cookie.WithMaxAge(3600))
//	resp = cookie.Delete(cookies, resp, "legacy")
//	pipeline.WriteHTTP(resp)
//
// Config can be populated from environment variables (COOKIE_SECRETS,
// COOKIE_DOMAIN, ...) and passed to NewFromConfig.
//
// Errors are sentinels (ErrCookieNotFound, ErrInvalidSignature,
// ErrDecryptionFailed, ErrInvalidFormat) for use with errors.Is.
package cookie
