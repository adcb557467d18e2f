package apperrors

// RedirectError wraps an authentication failure from the delegated identity
// path with a login URL the client should bounce the user to.
type RedirectError struct {
	Err        error
	RedirectTo string
}

func (e *RedirectError) Error() string {
	return e.Err.Error()
}

func (e *RedirectError) Unwrap() error {
	return e.Err
}
