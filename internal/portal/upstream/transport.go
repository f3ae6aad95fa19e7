package upstream

import "net/http"

// TokenHeader is the header the supplier API authenticates on.
const TokenHeader = "x-auth-token"

// Transport is the single place the session token crosses from portal state
// into an outgoing request. It reads credentials from the request context and
// sets the auth header when a token is present; without one the request goes
// out bare.
//
// When the API answers 401 the OnUnauthorized hook fires once for that
// response, so session teardown happens in one place instead of in every
// caller.
type Transport struct {
	// Base is the underlying RoundTripper. http.DefaultTransport when nil.
	Base http.RoundTripper
	// OnUnauthorized is invoked with the session id of a request that came
	// back 401. Optional.
	OnUnauthorized func(sid string)
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	creds, ok := CredentialsFrom(req.Context())
	if ok && creds.Token != "" {
		// Per RoundTripper contract the request must not be mutated.
		req = req.Clone(req.Context())
		req.Header.Set(TokenHeader, creds.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && ok && creds.SID != "" && t.OnUnauthorized != nil {
		t.OnUnauthorized(creds.SID)
	}
	return resp, nil
}
