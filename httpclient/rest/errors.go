package rest

import "github.com/kbukum/gofetch/httpclient"

// REST error helpers delegate to httpclient's error classification,
// so callers of the typed verbs need not import httpclient to check errors.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return httpclient.IsNotFound(err) }

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return httpclient.IsServerError(err) }

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }

// IsCancel checks if the request was canceled.
func IsCancel(err error) bool { return httpclient.IsCancel(err) }
