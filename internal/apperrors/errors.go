package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates a missing, invalid or expired credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates a valid credential that lacks a required claim or role.
var ErrForbidden = errors.New("forbidden")

// ErrServiceUnavailable indicates the external identity service could not be reached.
var ErrServiceUnavailable = errors.New("identity service unavailable")
