package walker

import "fmt"

const (
	errorPathMissingFormat      = "path does not exist: %s"
	errorPathNotDirectoryFormat = "path is not a directory: %s"
)

// NotFoundError reports a root path that does not exist.
type NotFoundError struct {
	Path string
}

func (notFoundError *NotFoundError) Error() string {
	return fmt.Sprintf(errorPathMissingFormat, notFoundError.Path)
}

// NotADirectoryError reports a root path that exists but is not a directory.
type NotADirectoryError struct {
	Path string
}

func (notADirectoryError *NotADirectoryError) Error() string {
	return fmt.Sprintf(errorPathNotDirectoryFormat, notADirectoryError.Path)
}
