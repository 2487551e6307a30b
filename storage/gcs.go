// Package storage is the object-storage collaborator: durable public blobs
// under non-overwritable keys.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Uploader is what the quote handler needs from a blob store.
type Uploader interface {
	// Upload writes data under objectName and returns its public URL. It
	// must refuse to overwrite an existing key.
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	PublicURL(objectName string) string
}

// GCSUploader implements Uploader on a Google Cloud Storage bucket.
type GCSUploader struct {
	client     *gcs.Client
	bucket     string
	timeout    time.Duration
	maxRetries int
}

func NewGCSUploader(ctx context.Context, bucket, credentialsFile string, timeout time.Duration, maxRetries int) (*GCSUploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket, timeout: timeout, maxRetries: maxRetries}, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }

// Upload writes the object with a DoesNotExist precondition and bounded
// retry. A precondition failure means the key is already taken and is not
// retried.
func (u *GCSUploader) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	obj := u.client.Bucket(u.bucket).Object(objectName).If(gcs.Conditions{DoesNotExist: true})

	attempt := func() error {
		w := obj.NewWriter(ctx)
		w.ContentType = contentType
		if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
			_ = w.Close()
			return fmt.Errorf("upload copy: %w", err)
		}
		if err := w.Close(); err != nil {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
				return backoff.Permanent(fmt.Errorf("object %s already exists: %w", objectName, err))
			}
			return fmt.Errorf("upload close: %w", err)
		}
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(u.maxRetries)), ctx)
	if err := backoff.Retry(attempt, bo); err != nil {
		return "", err
	}

	return u.PublicURL(objectName), nil
}

func (u *GCSUploader) PublicURL(objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName)
}
