// Package blob stores the whole table as a single CSV object in any
// gocloud.dev bucket (file://, mem://, gs://).
package blob

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"
	"didilikeit/internal/errors"
	"didilikeit/internal/infra/tablestore"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const contentType = "text/csv; charset=utf-8"

// Store is a TableStore backed by one bucket object.
type Store struct {
	bucket *blob.Bucket
	key    string
	logger *slog.Logger
}

// Open opens the bucket named by bucketURL.
func Open(ctx context.Context, bucketURL, key string, logger *slog.Logger) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return New(bucket, key, logger), nil
}

// New wraps an already opened bucket.
func New(bucket *blob.Bucket, key string, logger *slog.Logger) *Store {
	return &Store{
		bucket: bucket,
		key:    key,
		logger: logger,
	}
}

// ReadAll downloads and parses the object. A missing object is an empty table.
func (s *Store) ReadAll(ctx context.Context) (*entity.Snapshot, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return entity.NewSnapshot(rows), nil
}

// ReplaceAll uploads the whole table. The version check re-reads the object
// first; it is not atomic with the upload.
func (s *Store) ReplaceAll(ctx context.Context, rows []*entity.LogEntry, ifVersion string) error {
	if ifVersion != "" {
		current, err := s.read(ctx)
		if err != nil {
			return err
		}
		if entity.Fingerprint(current) != ifVersion {
			return repository.ErrVersionMismatch
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(tablestore.Encode(rows)); err != nil {
		return errors.Wrap(err, "failed to encode table")
	}

	if err := s.bucket.WriteAll(ctx, s.key, buf.Bytes(), &blob.WriterOptions{ContentType: contentType}); err != nil {
		return repository.NewStoreError("blob write", err)
	}

	s.logger.Debug("Replaced table object", slog.String("key", s.key), slog.Int("rows", len(rows)))

	return nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	return s.bucket.Close()
}

func (s *Store) read(ctx context.Context) ([]*entity.LogEntry, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return []*entity.LogEntry{}, nil
	}
	if err != nil {
		return nil, repository.NewStoreError("blob read", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, repository.NewStoreError("blob parse", err)
	}

	return tablestore.Decode(records), nil
}
