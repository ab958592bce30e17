package uploads

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// Transfer defaults.
const (
	DefaultMaxAttempts    = 3
	DefaultAttemptTimeout = 60 * time.Second
	defaultBackoffBase    = 500 * time.Millisecond
	defaultBackoffJitter  = 1250 * time.Millisecond
)

// TransferOptions tune a single object transfer.
type TransferOptions struct {
	// MaxAttempts caps the number of PUT attempts. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// AttemptTimeout bounds each individual attempt. Zero means DefaultAttemptTimeout.
	AttemptTimeout time.Duration
	// Progress receives percentages 0..100. 100 is reported exactly once,
	// after the storage endpoint has acknowledged the write.
	Progress func(percent int)
	// BackoffBase and BackoffJitter shape the randomized pause between
	// attempts: base plus a uniform draw from [0, jitter).
	BackoffBase   time.Duration
	BackoffJitter time.Duration
}

func (o TransferOptions) maxAttempts() int {
	if o.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

func (o TransferOptions) attemptTimeout() time.Duration {
	if o.AttemptTimeout <= 0 {
		return DefaultAttemptTimeout
	}
	return o.AttemptTimeout
}

func (o TransferOptions) backoff() time.Duration {
	base := o.BackoffBase
	if base <= 0 {
		base = defaultBackoffBase
	}
	jitter := o.BackoffJitter
	if jitter <= 0 {
		jitter = defaultBackoffJitter
	}
	return base + time.Duration(rand.Int63n(int64(jitter)))
}

// UploadToPresignedURL PUTs body to a pre-signed URL, retrying transient
// failures up to the attempt cap. Remote business errors elsewhere are never
// retried; this transfer is the only retry site in the gateway.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url string, body []byte, contentType string, opts TransferOptions) error {
	if client == nil {
		client = http.DefaultClient
	}

	attempts := opts.maxAttempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.backoff()):
			}
		}

		lastErr = putOnce(ctx, client, url, body, contentType, opts)
		if lastErr == nil {
			if opts.Progress != nil {
				opts.Progress(100)
			}
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return fmt.Errorf("uploads: transfer failed after %d attempts: %w", attempts, lastErr)
}

func putOnce(ctx context.Context, client *http.Client, url string, body []byte, contentType string, opts TransferOptions) error {
	attemptCtx, cancel := context.WithTimeout(ctx, opts.attemptTimeout())
	defer cancel()

	reader := &progressReader{
		Reader:   bytes.NewReader(body),
		total:    int64(len(body)),
		progress: opts.Progress,
	}
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPut, url, reader)
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage returned status %d", resp.StatusCode)
	}
	return nil
}

// progressReader reports transfer progress capped at 99; the terminal 100 is
// emitted only after the server acknowledges the attempt.
type progressReader struct {
	*bytes.Reader
	total    int64
	sent     int64
	progress func(percent int)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if n > 0 && r.progress != nil && r.total > 0 {
		r.sent += int64(n)
		percent := int(r.sent * 100 / r.total)
		if percent > 99 {
			percent = 99
		}
		r.progress(percent)
	}
	return n, err
}
