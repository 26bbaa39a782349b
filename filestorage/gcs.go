package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"cloud.google.com/go/storage"
)

const (
	timeout = time.Second * 50
)

// GCSClient is a client for google cloud storage
type GCSClient struct {
	client *storage.Client
}

// NewGCSClient returns an instance of GCS. It
// will panic if occured failure on create a new client
func NewGCSClient() FileStorage {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatalf("failed to create GCS client, error %q", err)
	}
	return &GCSClient{
		client: client,
	}
}

// Upload copies the given bytes to the bucket under fileName and
// returns the object path.
func (gcs *GCSClient) Upload(b []byte, bucket, fileName string) (string, error) {
	r := bytes.NewReader(b)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	wc := gcs.client.Bucket(bucket).Object(fileName).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		return "", fmt.Errorf("failed to copy file content to GCS bucket (%s/%s), error %q", bucket, fileName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close storage.Writer object (%s/%s), error %q", bucket, fileName, err)
	}
	return fmt.Sprintf("gs://%s/%s", bucket, fileName), nil
}

// FileExists checks if file exists. If file exists
// it returns true, else false
func (gcs *GCSClient) FileExists(bucket, fileName string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := gcs.client.Bucket(bucket).Object(fileName).Attrs(ctx)
	return err == nil
}
