package mail

import "errors"

// PermanentError means retrying the same message cannot succeed.
type PermanentError struct{ msg string }

func (e PermanentError) Error() string { return e.msg }

// TemporaryError is worth a retry.
type TemporaryError struct{ msg string }

func (e TemporaryError) Error() string { return e.msg }

func IsPermanent(err error) bool {
	var p PermanentError
	return errors.As(err, &p)
}
