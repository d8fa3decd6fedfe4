package storage

import "io"

// FileStorage persists uploaded images. The only implementation writes
// to the local filesystem; durability is explicitly not a goal.
type FileStorage interface {
	// Save writes the file under the given key and returns the number
	// of bytes written.
	Save(key string, reader io.Reader) (int64, error)

	// Open returns the stored file for reading.
	Open(key string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing key is not an
	// error.
	Delete(key string) error

	// URL returns the public URL at which the file is served.
	URL(key string) string
}
