package cli

import (
	"errors"

	"github.com/vk/packlane/internal/config"
	"github.com/vk/packlane/internal/engine"
)

// Process exit codes. Scripts depend on these staying mutually distinct and
// stable across releases.
const (
	ExitOK              = 0
	ExitFailure         = 1 // uncaught top-level error, including batch build failure
	ExitUsage           = 2 // bad flags or arguments
	ExitEnvOverride     = 3 // .env override file present but unreadable
	ExitSettingsMissing = 4 // settings file absent
	ExitSettingsInvalid = 5 // settings file malformed or a field mistyped
	ExitWatchFatal      = 6 // watch session failed unrecoverably
	ExitCleanup         = 7 // output folder could not be cleaned
)

// ExitError is an error that carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// WrapExit maps an error from any component to an ExitError with the exit
// code its kind demands. Errors that already are ExitErrors pass through.
func WrapExit(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitFailure
	var (
		loadErr     *config.LoadError
		missingErr  *config.MissingError
		parseErr    *config.ParseError
		validateErr *config.ValidationError
		fatalErr    *engine.FatalError
		cleanupErr  *engine.CleanupError
	)
	switch {
	case errors.As(err, &loadErr):
		code = ExitEnvOverride
	case errors.As(err, &missingErr):
		code = ExitSettingsMissing
	case errors.As(err, &parseErr), errors.As(err, &validateErr):
		code = ExitSettingsInvalid
	case errors.As(err, &fatalErr):
		code = ExitWatchFatal
	case errors.As(err, &cleanupErr):
		code = ExitCleanup
	}
	return &ExitError{Code: code, Message: err.Error()}
}
