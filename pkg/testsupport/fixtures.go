package testsupport

import (
	"os"
	"strings"
)

// ReadGolden returns the contents of a golden file without the trailing
// newline editors append, so it can be compared against rendered output.
func ReadGolden(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
