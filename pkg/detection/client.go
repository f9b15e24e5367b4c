package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const processImagePath = "/process_image"

// ServerError is returned when the endpoint answers with a non-200 status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("detection failed with status %d: %s", e.StatusCode, e.Message)
}

// Client uploads images to a detection endpoint.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	maxRetries      uint64
	backoffDuration time.Duration
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetries retries transport failures. Error responses are never retried.
func WithRetries(maxRetries uint64, backoffDuration time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoffDuration = backoffDuration
	}
}

// NewClient creates a client for the server at baseURL. E.g., "http://127.0.0.1:5000"
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		httpClient:      &http.Client{Timeout: time.Minute},
		backoffDuration: time.Second / 2,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	return c.Upload(ctx, image, "image")
}

// Upload posts the image as the multipart field "image".
func (c *Client) Upload(ctx context.Context, image []byte, filename string) ([]Detection, error) {
	body, contentType, err := multipartBody(image, filename)
	if err != nil {
		return nil, err
	}

	return backoff.RetryWithData(func() ([]Detection, error) {
		return c.upload(ctx, body, contentType)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.backoffDuration), c.maxRetries), ctx))
}

func (c *Client) upload(ctx context.Context, body []byte, contentType string) ([]Detection, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+processImagePath, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	request.Header.Set("Content-Type", contentType)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to send image: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		var errorResponse ErrorResponse
		message := http.StatusText(response.StatusCode)
		if err := json.Unmarshal(responseBody, &errorResponse); err == nil && errorResponse.Error != "" {
			message = errorResponse.Error
		}
		return nil, backoff.Permanent(&ServerError{StatusCode: response.StatusCode, Message: message})
	}

	detections := []Detection{}
	if err := json.Unmarshal(responseBody, &detections); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode detections: %w", err))
	}
	return detections, nil
}

func multipartBody(image []byte, filename string) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

// ErrorMessage returns the server's error string when err carries one.
func ErrorMessage(err error) (string, bool) {
	var serverError *ServerError
	if errors.As(err, &serverError) {
		return serverError.Message, true
	}
	return "", false
}
