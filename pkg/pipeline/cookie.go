package pipeline

import "net/http"

// Cookie is a single named cookie with its optional attributes.
// A zero MaxAge means the attribute is not set.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	Path     string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// HTTPCookie converts the cookie into its net/http form.
func (c Cookie) HTTPCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HTTPOnly,
		SameSite: c.SameSite,
	}
}

// CookieFromHTTP converts a net/http cookie.
func CookieFromHTTP(c *http.Cookie) Cookie {
	return Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
}

// mergeCookies replaces by name with last-write-wins among updates.
func mergeCookies(current, updates []Cookie) []Cookie {
	latest := make(map[string]Cookie, len(updates))
	order := make([]string, 0, len(updates))
	for _, c := range updates {
		if _, ok := latest[c.Name]; !ok {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}

	result := make([]Cookie, 0, len(current)+len(order))
	replaced := make(map[string]bool, len(order))
	for _, c := range current {
		if u, ok := latest[c.Name]; ok {
			result = append(result, u)
			replaced[c.Name] = true
			continue
		}
		result = append(result, c)
	}
	for _, name := range order {
		if !replaced[name] {
			result = append(result, latest[name])
		}
	}
	return result
}

func findCookie(cookies []Cookie, name string) (Cookie, bool) {
	for _, c := range cookies {
		if c.Name == name {
			return c, true
		}
	}
	return Cookie{}, false
}
