// middleware/middleware.go
package middleware

import (
	"clementus360/taskai/config"
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Middleware wraps an outbound transport.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type skipAuthKey struct{}

// WithSkipAuth marks requests made with ctx as not needing a credential.
func WithSkipAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

func SkipAuth(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuthKey{}).(bool)
	return skip
}

// CredentialSource is satisfied by session.Store.
type CredentialSource interface {
	Get() (string, bool)
}

// AuthMiddleware attaches "Authorization: Bearer <credential>" unless the
// request context says to skip it. With no stored credential the request
// goes out unauthenticated.
func AuthMiddleware(creds CredentialSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if SkipAuth(r.Context()) {
				return next.RoundTrip(r)
			}
			token, ok := creds.Get()
			if !ok {
				return next.RoundTrip(r)
			}

			// RoundTrippers must not modify the caller's request
			r = r.Clone(r.Context())
			r.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(r)
		})
	}
}

// JSONMiddleware sets the JSON content headers used by every API call.
func JSONMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			r = r.Clone(r.Context())
			if r.Body != nil && r.Header.Get("Content-Type") == "" {
				r.Header.Set("Content-Type", "application/json")
			}
			r.Header.Set("Accept", "application/json")
			return next.RoundTrip(r)
		})
	}
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			entry := config.Logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": duration.String(),
				"auth":     r.Header.Get("Authorization") != "",
			})
			if err != nil {
				entry.WithError(err).Warn("HTTP request failed")
				return resp, err
			}
			entry.WithField("status", resp.StatusCode).Debug("HTTP request")
			return resp, nil
		})
	}
}

// Chain allows chaining multiple middleware functions. The first middleware
// is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.RoundTripper) http.RoundTripper {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
