package depgraph

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrResolution is returned when no base directory can be computed for the roots.
	ErrResolution = errors.New("cannot compute base directory")
	// ErrUnresolvedModule is returned when a path-like reference names no existing file.
	ErrUnresolvedModule = errors.New("cannot find module")
	// ErrPreprocess is returned when a dialect's preprocessing step fails.
	ErrPreprocess = errors.New("preprocessing failed")
	// ErrRead is returned when a file vanished or became unreadable after discovery.
	ErrRead = errors.New("cannot read file")
	// ErrCycle is returned by analyses that require an acyclic graph.
	ErrCycle = errors.New("dependency cycle detected")
	// ErrInvalidConfig is returned when a Config cannot be used to build a graph.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UnresolvedModuleError names the reference that could not be resolved and the
// directory it was resolved from.
type UnresolvedModuleError struct {
	Reference string
	Dir       string
}

func (e *UnresolvedModuleError) Error() string {
	return fmt.Sprintf("cannot find module '%s' from '%s'", e.Reference, e.Dir)
}

// Is makes errors.Is(err, ErrUnresolvedModule) hold for every UnresolvedModuleError.
func (e *UnresolvedModuleError) Is(target error) bool {
	return target == ErrUnresolvedModule
}

// FileError ties a per-file failure to the file that produced it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func newReadError(path string, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "read %s", path), ErrRead)
}

func newPreprocessError(path string, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "preprocess %s", path), ErrPreprocess)
}

func newScanError(path string, cause error) error {
	return errors.Wrapf(cause, "scan %s", path)
}

func newResolutionError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrResolution)
}

func newConfigError(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidConfig)
}
