// internal/adapters/out/export/gcs_uploader.go
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	orderdom "github.com/caerux/e-commerce-website/internal/domain/order"
)

// GCSOrderUploader uploads each placed order CSV to
// "gs://<bucket>/orders/<orderId>.csv".
type GCSOrderUploader struct {
	client *storage.Client
	bucket string
	log    *zap.Logger
}

func NewGCSOrderUploader(client *storage.Client, bucket string, log *zap.Logger) (*GCSOrderUploader, error) {
	if client == nil {
		return nil, fmt.Errorf("export: gcs client is nil")
	}
	b := strings.TrimSpace(bucket)
	if b == "" {
		return nil, fmt.Errorf("export: gcs bucket is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GCSOrderUploader{client: client, bucket: b, log: log}, nil
}

func (u *GCSOrderUploader) ExportOrder(ctx context.Context, o orderdom.Order) error {
	var buf bytes.Buffer
	if err := WriteOrderCSV(&buf, o); err != nil {
		return err
	}

	object := "orders/" + o.ID + ".csv"
	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/csv"
	w.CacheControl = "no-store"

	if _, err := w.Write(buf.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("export: upload gs://%s/%s: %w", u.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: upload gs://%s/%s: %w", u.bucket, object, err)
	}

	u.log.Info("order csv uploaded",
		zap.String("orderId", o.ID),
		zap.String("url", "gs://"+u.bucket+"/"+object))
	return nil
}
