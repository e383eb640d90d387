package manifest

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

// Read implements [io.Reader], but also respects context cancellation
// in-between any of the respective read operations.
func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// checksumFile hashes the contents of a file with BLAKE3 and returns the
// hex-encoded digest. Cancellation is respected between individual reads.
func (b *Builder) checksumFile(ctx context.Context, path string) (string, error) {
	file, err := b.osHandler.Open(path)
	if err != nil {
		return "", fmt.Errorf("(manifest-hash) failed to open: %w", err)
	}
	defer file.Close()

	hasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: file,
	}

	if _, err := io.Copy(hasher, ctxReader); err != nil {
		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("(manifest-hash) hashing was canceled: %w", err)
		}

		return "", fmt.Errorf("(manifest-hash) failed to hash: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
