package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/livemd/pkg/notefile"
)

// Exit codes for livemd.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but could not do what was asked,
	// such as removing a style that is not present.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Error categories returned by commands.
var (
	// ErrInvalidUsage wraps errors caused by bad arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading errors.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, notefile.ErrNotFound),
		errors.Is(err, notefile.ErrPermissionDenied),
		errors.Is(err, notefile.ErrIsDirectory),
		errors.Is(err, notefile.ErrModified),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitFailure
	}
}
