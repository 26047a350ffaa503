package ocr

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineNotFound is returned when the tesseract executable cannot be located.
	ErrEngineNotFound = errors.New("tesseract is not installed or it's not in your PATH")

	// ErrTimeout is returned when the engine exceeds the requested timeout.
	ErrTimeout = errors.New("tesseract process timeout")

	// ErrUnsupportedInput is returned for inputs that are neither a path nor an image.
	ErrUnsupportedInput = errors.New("unsupported image object")

	// ErrTabularUnavailable is returned for DataFrame output when no FrameParser is wired.
	ErrTabularUnavailable = errors.New("tabular output not available: no frame parser configured")

	// ErrInvalidVersion is returned by ParseVersion for unparseable engine versions.
	ErrInvalidVersion = errors.New("invalid tesseract version")

	// ErrUnsupportedExtension is returned when an output kind is not valid for the call.
	ErrUnsupportedExtension = errors.New("unsupported extension")

	// ErrUnsupportedOutputType is returned when a method cannot produce the requested OutputType.
	ErrUnsupportedOutputType = errors.New("unsupported output type")

	// ErrFeatureUnsupported matches every *VersionError.
	ErrFeatureUnsupported = errors.New("feature not supported by this tesseract version")

	// ErrTSVNotSupported matches a *VersionError raised for TSV output.
	ErrTSVNotSupported = errors.New("TSV output not supported")

	// ErrALTONotSupported matches a *VersionError raised for ALTO XML output.
	ErrALTONotSupported = errors.New("ALTO output not supported")
)

// ExecutionError reports a non-zero tesseract exit status.
type ExecutionError struct {
	// Status is the process exit status, or StatusTimeout.
	Status int

	// Message is the captured stderr joined into a single line.
	Message string
}

func (e *ExecutionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tesseract exited with status %d", e.Status)
	}
	return fmt.Sprintf("tesseract exited with status %d: %s", e.Status, e.Message)
}

// InvalidConfigError reports a config string that could not be split into words.
type InvalidConfigError struct {
	Config string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid tesseract config %q: %v", e.Config, e.Err)
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// VersionError reports an output format the installed engine is too old for.
type VersionError struct {
	Feature  string
	Required string
	Actual   string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s output not supported. Tesseract >= %s required (found %s)", e.Feature, e.Required, e.Actual)
}

// Is lets errors.Is match ErrFeatureUnsupported and the per-feature sentinel.
func (e *VersionError) Is(target error) bool {
	switch target {
	case ErrFeatureUnsupported:
		return true
	case ErrTSVNotSupported:
		return e.Feature == "TSV"
	case ErrALTONotSupported:
		return e.Feature == "ALTO"
	}
	return false
}
