package document

import (
	"fmt"
	"os"
)

// ReadFile loads a markdown document and runs the full preprocessing
// sequence on it. See Preprocess for what is removed.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading markdown file: %w", err)
	}
	return Preprocess(string(data)), nil
}
