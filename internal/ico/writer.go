package ico

import (
	"fmt"
	"os"
)

// WriteFile writes data to path in a single write, creating or truncating
// the file. The underlying filesystem error is wrapped, not replaced.
func WriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) // #nosec G302 - icon is a public asset
	if err != nil {
		return fmt.Errorf("failed to open icon file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close icon file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write icon file: %w", err)
	}
	return nil
}
