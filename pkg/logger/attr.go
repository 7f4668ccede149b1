package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// AuthenticatorID records the authenticator identifier under the key "authenticator_id".
// Empty ids produce an empty Attr.
func AuthenticatorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("authenticator_id", id)
}

// Principal records the provider-qualified principal under the key "principal".
func Principal(loginInfo string) slog.Attr {
	if loginInfo == "" {
		return slog.Attr{}
	}
	return slog.String("principal", loginInfo)
}

// ValidationCodes records rejection codes under the key "validation_codes".
// If there are none, it returns an empty Attr.
func ValidationCodes(codes []string) slog.Attr {
	if len(codes) == 0 {
		return slog.Attr{}
	}
	return slog.Any("validation_codes", codes)
}

// Validator records a validator name under the key "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
