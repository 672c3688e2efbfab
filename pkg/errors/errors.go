package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Credential errors.
	ErrNoCredentials        = fmt.Errorf("no usable credentials")
	ErrAuthenticationFailed = fmt.Errorf("authentication rejected by remote host")
	ErrCredentialFile       = fmt.Errorf("failed to materialize credential file")

	// Transfer errors.
	ErrTransferFailed   = fmt.Errorf("dataset transfer failed")
	ErrUnexpectedStatus = fmt.Errorf("unexpected status code")
	ErrInvalidPath      = fmt.Errorf("invalid path")

	// Manifest errors.
	ErrManifestParse = fmt.Errorf("failed to parse manifest")
	ErrManifestWrite = fmt.Errorf("failed to write manifest")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
