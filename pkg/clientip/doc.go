// Package clientip resolves the originating client address of a request
// served behind reverse proxies.
//
// Headers are examined in priority order until one yields a valid address:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (first valid entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// GetIP works on *http.Request; FromPipeline works on a request pipeline and
// is what the authn middleware uses to bind authenticators to an address.
// Resolve accepts any header lookup and a custom priority list for other
// deployments.
//
//	ip := clientip.GetIP(r)
//
//	mux := chi.NewRouter()
//	mux.Use(clientip.Middleware)
//
// Only trust these headers when a proxy you control overwrites them; a
// client talking to the service directly can set any of them.
//
// No errors are returned: an empty string means no valid address was found.
package clientip
