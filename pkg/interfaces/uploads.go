package interfaces

import (
	"context"
	"io"
)

// Uploader stores a file and returns the public URL it can be served from.
// The solutions runtime never inspects file bytes; it only records the URL
// on block payloads and solution icons.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, name string, folder string) (string, error)
}
