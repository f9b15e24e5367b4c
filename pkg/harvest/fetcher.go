package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Matches the 20MB request limit of the OCR backends.
const maxImageSize = 20 << 20

var ErrTooLarge = errors.New("response exceeds the size limit")

// Fetcher downloads a resource and reports its MIME type.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

type HTTPFetcher struct {
	client  *http.Client
	maxSize int64
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{client: client, maxSize: maxImageSize}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch %s: status %d", url, response.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, f.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", url, ErrTooLarge)
	}

	mimeType, _, err := mime.ParseMediaType(response.Header.Get("Content-Type"))
	if err != nil || mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}
