package domain

import "errors"

// Error kinds shared by gateways and use cases. Wrap them with fmt.Errorf
// and check with errors.Is.
var (
	// ErrConfiguration means a required setting, usually a credential, is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport covers network failures and non-success HTTP statuses.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse means the provider answered with an unexpected shape.
	ErrMalformedResponse = errors.New("malformed response")
)
