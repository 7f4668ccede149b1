// Package validator decides whether a previously issued authenticator is
// still acceptable by running a set of independent checks and accumulating
// every failure.
//
// A Validator exposes a single operation, IsValid, which returns either a
// valid Result or a Result carrying one or more ValidationError values. New
// kinds of checks are added by implementing the interface (or wrapping a
// function with Func).
//
// Built-in validators:
//   - BackingStore – asks an injected Predicate whether the authenticator
//     still exists in a store (database, cache, remote service).
//   - Expiry, IdleTimeout – temporal checks against the authenticator snapshot.
//   - Fingerprint, ClientIP – compare request-derived values with the ones
//     bound to the authenticator when it was issued.
//
// # Composition
//
// Engine runs all validators concurrently, waits for every one of them and
// folds the outcomes. It never stops at the first failure, so a caller can
// report "expired and fingerprint mismatch" in one response:
//
//	engine := validator.NewEngine([]validator.Validator{
//	    validator.Expiry(nil),
//	    validator.IdleTimeout(nil),
//	    validator.BackingStore(store.Exists),
//	}, validator.WithLogger(log), validator.WithTimeout(2*time.Second))
//
//	result, err := engine.Extend(validator.Fingerprint(req.Fingerprint())).Validate(ctx, auth)
//	switch {
//	case err != nil:
//	    // validity could not be determined, e.g. store unavailable
//	case !result.IsValid():
//	    // rejected, result.Errors() lists every reason
//	}
//
// # Error Handling
//
// Rejections are values, never errors. The error return of IsValid and
// Validate means "could not determine validity" and wraps ErrStoreUnavailable
// or ErrValidationIncomplete, so callers can tell the two outcomes apart with
// errors.Is. ValidationErrors implements Is, making
// errors.Is(result.Err(), validator.ErrExpired) work as expected.
package validator
