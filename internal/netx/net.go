// Package netx holds small HTTP helpers shared by client code.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	uploadAttempts = 3
	uploadBackoff  = 200 * time.Millisecond
)

// UploadToS3PresignedURL PUTs file to a presigned object-storage URL.
// Network errors and 5xx responses are retried with exponential backoff;
// any other non-2xx status fails immediately.
func UploadToS3PresignedURL(ctx context.Context, hc *http.Client, url string, file []byte, contentType string) error {
	if hc == nil {
		hc = http.DefaultClient
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b := retry.WithMaxRetries(uploadAttempts-1, retry.NewExponential(uploadBackoff))

	return retry.Do(ctx, b, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(file))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)

		resp, err := hc.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err = fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(body))
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(err)
		}
		return err
	})
}
