package types

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrorCode classifies command failures into a fixed taxonomy. Codes ride
// on the result envelope so automation callers can branch without parsing
// messages.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "not_found"
	CodeNotADirectory      ErrorCode = "not_a_directory"
	CodeAlreadyExists      ErrorCode = "already_exists"
	CodePermissionDenied   ErrorCode = "permission_denied"
	CodeNotEmpty           ErrorCode = "not_empty"
	CodeUnsafePath         ErrorCode = "unsafe_path"
	CodeBackendUnavailable ErrorCode = "backend_unavailable"
	CodeInvalidRequest     ErrorCode = "invalid_request"
	CodeIOFailure          ErrorCode = "io_failure"
)

// String returns the wire form of the code.
func (c ErrorCode) String() string { return string(c) }

// CodeFromErr maps an OS-level error to its taxonomy code. Failures are
// classified at the syscall boundary; anything unrecognized degrades to
// CodeIOFailure, which carries the underlying message on the envelope.
func CodeFromErr(err error) ErrorCode {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, fs.ErrExist):
		return CodeAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		return CodePermissionDenied
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOTDIR:
			return CodeNotADirectory
		case syscall.ENOTEMPTY:
			return CodeNotEmpty
		case syscall.EACCES, syscall.EPERM:
			return CodePermissionDenied
		case syscall.ENOENT:
			return CodeNotFound
		case syscall.EEXIST:
			return CodeAlreadyExists
		}
	}
	return CodeIOFailure
}
