package cli

import (
	"fmt"
	"os"
)

// validateFile checks that path names an existing regular file. role ("Source" or "Target") is used in the message.
func validateFile(path, role string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s file '%s' does not exist", role, path)
		}
		return fmt.Errorf("%s file '%s' cannot be accessed: %w", role, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s path '%s' is not a file", role, path)
	}
	return nil
}
