package scan

import (
	"fmt"
)

// A file that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (err *FileAccessError) Error() string {
	return fmt.Sprintf("could not read %s: %v", err.Path, err.Err)
}

func (err *FileAccessError) Unwrap() error {
	return err.Err
}

// A file whose blame could not be retrieved, or was empty.
type AttributionError struct {
	Path string
	Err  error
}

func (err *AttributionError) Error() string {
	return fmt.Sprintf("attribution unavailable for %s: %v", err.Path, err.Err)
}

func (err *AttributionError) Unwrap() error {
	return err.Err
}
