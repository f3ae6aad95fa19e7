package upstream

import "context"

// Credentials identify the portal session a request is made on behalf of.
// Token may be empty for public calls such as login.
type Credentials struct {
	SID   string
	Token string
}

type credentialsKey struct{}

// WithCredentials binds session credentials to ctx for the transport to pick
// up when the request goes out.
func WithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom extracts the credentials bound to ctx, if any.
func CredentialsFrom(ctx context.Context) (Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(Credentials)
	return creds, ok
}
