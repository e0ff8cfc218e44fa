package clients

import (
	"context"
	"errors"
	"io"
	"sync"

	"cloud.google.com/go/storage"
	"golang.org/x/xerrors"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobReader reads whole objects out of a bucket.
type BlobReader interface {
	ReadBlob(ctx context.Context, bucket string, path string) ([]byte, error)
}

// StorageClient reads from Google Cloud Storage. The underlying client is
// created on first use so that commands which never touch a bucket do not
// need credentials.
type StorageClient struct {
	once    sync.Once
	client  *storage.Client
	initErr error
}

func NewStorageClient() *StorageClient {
	return &StorageClient{}
}

func (c *StorageClient) ReadBlob(ctx context.Context, bucket string, path string) ([]byte, error) {
	c.once.Do(func() {
		c.client, c.initErr = storage.NewClient(context.Background())
	})
	if c.initErr != nil {
		return nil, xerrors.Errorf("failed to create storage client: %w", c.initErr)
	}

	reader, err := c.client.Bucket(bucket).Object(path).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, xerrors.Errorf("failed to open gs://%s/%s: %w", bucket, path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, xerrors.Errorf("failed to read gs://%s/%s: %w", bucket, path, err)
	}
	return data, nil
}

func (c *StorageClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
