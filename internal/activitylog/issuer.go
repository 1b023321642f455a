package activitylog

import "context"

type issuerKey struct{}

// WithIssuer returns a context carrying the request's resolved identity.
// Loggers are shared across concurrent requests, so the issuer travels with
// the request context instead of living on the logger; a nil issuer returns
// the context unchanged, leaving the request anonymous.
func WithIssuer(ctx context.Context, issuer Subject) context.Context {
	if issuer == nil {
		return ctx
	}
	return context.WithValue(ctx, issuerKey{}, issuer)
}

// IssuerFromContext returns the identity carried by the context, or nil for
// anonymous work.
func IssuerFromContext(ctx context.Context) Subject {
	if ctx == nil {
		return nil
	}
	issuer, _ := ctx.Value(issuerKey{}).(Subject)
	return issuer
}
