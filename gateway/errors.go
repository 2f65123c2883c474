package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend exchange. The shell reacts
// differently per kind: inline field errors for validation, a redirect
// for unauthorized, banners for network and server failures.
type Kind int

const (
	// KindUnauthorized means the credential was rejected; the session
	// has already been torn down when this is returned
	KindUnauthorized Kind = iota
	// KindNotFound means the target resource does not exist
	KindNotFound
	// KindValidation means the server rejected one or more fields
	KindValidation
	// KindNetwork means no response was received (timeout, connection)
	KindNetwork
	// KindServer means the backend failed (5xx)
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the structured failure every gateway operation returns.
// Fields carries server-side per-field messages for validation
// rejections.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsKind reports whether err is a gateway Error of the given kind
func IsKind(err error, kind Kind) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}
