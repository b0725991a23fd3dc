package satellite

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth indicates a failed login or a missing session token.
	ErrAuth = errors.New("authentication with the Satellite server failed")

	// ErrAmbiguousNVR indicates a package lookup which did not return
	// exactly one match.
	ErrAmbiguousNVR = errors.New("package lookup did not return exactly one match")

	// ErrPolicyViolation indicates a remote script was requested for the
	// root user while the configuration does not allow it.
	ErrPolicyViolation = errors.New("running remote scripts as root is not allowed")
)

// UploadRejectedError carries the server response of a failed PACKAGE-PUSH.
type UploadRejectedError struct {
	StatusCode int
	// ServerMessage is the decoded X-RHN-Upload-Error-String header.
	ServerMessage string
	Body          string
}

func (e *UploadRejectedError) Error() string {
	message := fmt.Sprintf("package upload rejected with status %d", e.StatusCode)
	if e.ServerMessage != "" {
		message += ": " + e.ServerMessage
	}
	return message
}
