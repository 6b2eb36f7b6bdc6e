package scriptfs

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := ops.NewScriptFile("hello", "")
//	if errors.Is(err, scriptfs.ErrFileExists) {
//	    // ask for another name
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNameEmpty indicates an empty file or directory name.
	ErrNameEmpty = errors.New("name should not be empty")

	// ErrFileExists indicates the target path is already taken.
	ErrFileExists = errors.New("file exists")

	// ErrCreateFailed indicates a file or directory could not be created.
	ErrCreateFailed = errors.New("create failed")

	// ErrWriteFailed indicates script content could not be written.
	ErrWriteFailed = errors.New("file write failed")

	// ErrImportFailed indicates a file could not be imported.
	ErrImportFailed = errors.New("import failed")

	// ErrRenameFailed indicates a rename could not be performed.
	ErrRenameFailed = errors.New("rename failed")

	// ErrDeleteFailed indicates a delete could not be performed.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrDownloadFailed indicates a download failed.
	ErrDownloadFailed = errors.New("download failed")

	// ErrDownloadCancelled indicates a download was cancelled by the user.
	ErrDownloadCancelled = errors.New("download cancelled")
)

// usagePatterns are prefixes of errors produced by cobra/pflag argument parsing.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrFileExists), errors.Is(err, ErrNameEmpty):
		return ExitFileExists
	case errors.Is(err, ErrDownloadFailed), errors.Is(err, ErrDownloadCancelled):
		return ExitDownloadFailed
	case errors.Is(err, ErrCreateFailed),
		errors.Is(err, ErrWriteFailed),
		errors.Is(err, ErrImportFailed),
		errors.Is(err, ErrRenameFailed),
		errors.Is(err, ErrDeleteFailed):
		return ExitOperationFailed
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.HasPrefix(errStr, p) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
