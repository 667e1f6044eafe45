// Package auth builds the authorization headers sent to the Boosty API.
package auth

import (
	"errors"
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/s0up4200/imgdl/request"
)

// ErrInvalidToken indicates a token that cannot be sent as a header value
var ErrInvalidToken = errors.New("token is not a valid header value")

// Auth holds the headers that authenticate a request. It is immutable and
// may be shared between concurrent calls.
type Auth struct {
	header http.Header
}

// New returns an Auth carrying "Authorization: Bearer <token>". An empty
// token is accepted; the remote API is the one to reject it.
func New(token string) (*Auth, error) {
	value := "Bearer " + token
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil, &request.ConstructionError{Field: "token", Err: ErrInvalidToken}
	}

	header := make(http.Header, 1)
	header.Set("Authorization", value)
	return &Auth{header: header}, nil
}

// Header returns a copy of the authorization headers. A nil Auth yields a
// nil header, meaning an unauthenticated request.
func (a *Auth) Header() http.Header {
	if a == nil {
		return nil
	}
	return a.header.Clone()
}
