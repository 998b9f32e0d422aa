package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage is reported when a failure carries no message from the server.
const NetworkErrorMessage = "Network error"

// ErrTransport marks failures where no usable answer came back: the request
// never completed, or the server replied without a structured body.
var ErrTransport = errors.New("transport error")

// RejectedError is a failure the server explained.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Message)
}

func reject(status int, msg string) *RejectedError {
	return &RejectedError{Status: status, Message: msg}
}

// Message returns the text to show for err.
func Message(err error) string {
	var rej *RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return NetworkErrorMessage
}

// IsUnauthorized reports whether the server refused the caller's credentials or token.
func IsUnauthorized(err error) bool {
	var rej *RejectedError
	return errors.As(err, &rej) && (rej.Status == http.StatusUnauthorized || rej.Status == http.StatusForbidden)
}

// checkSuccess turns a 2xx body that still says success:false into an error.
func checkSuccess(success bool, msg string) error {
	if success {
		return nil
	}
	if msg == "" {
		msg = "Request failed"
	}
	return reject(http.StatusOK, msg)
}
