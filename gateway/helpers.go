package gateway

import "errors"

// ErrNoToken means a successful login response carried no access token.
var ErrNoToken = errors.New("response carried no access token")
