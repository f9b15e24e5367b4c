// Package lama removes text from images with a LaMa inpainting service.
// Ref: https://github.com/advimman/lama
package lama

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/overlingo-project/overlingo/pkg/typeset"
)

// The additional padding to add around the text bounding box to ensure complete text removal.
const AdditionalMaskPadding = 8

const inpaintPath = "/inpaint"

// Client posts an image and a mask to the service and reads back the
// inpainted image. White mask pixels are removed.
type Client struct {
	baseURL         string
	apiKey          string
	httpClient      *http.Client
	backoffDuration time.Duration
	maxRetries      uint64
}

func New(baseURL string, apiKey string, backoffDuration time.Duration) *Client {
	return &Client{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		apiKey:          apiKey,
		httpClient:      &http.Client{Timeout: 2 * time.Minute},
		backoffDuration: backoffDuration,
		maxRetries:      2,
	}
}

// Erase inpaints every region of img.
func (c *Client) Erase(ctx context.Context, img image.Image, regions []typeset.Region) (image.Image, error) {
	if len(regions) == 0 {
		return copyImage(img), nil
	}

	body, contentType, err := multipartBody(img, Mask(img.Bounds(), regions, AdditionalMaskPadding))
	if err != nil {
		return nil, err
	}

	return backoff.RetryWithData(func() (image.Image, error) {
		return c.inpaint(ctx, body, contentType)
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.backoffDuration), c.maxRetries), ctx))
}

func (c *Client) inpaint(ctx context.Context, body []byte, contentType string) (image.Image, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+inpaintPath, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	request.Header.Set("Content-Type", contentType)
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		log.Warn().Err(err).Msg("Inpainting request failed")
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("inpainting failed with status %d", response.StatusCode)
	}
	if response.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return nil, backoff.Permanent(fmt.Errorf("inpainting rejected with status %d: %s", response.StatusCode, strings.TrimSpace(string(message))))
	}

	output, _, err := image.Decode(response.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode inpainted image: %w", err))
	}
	return output, nil
}

// Mask returns a mask of bounds with every region, grown by padding and
// clipped to bounds, painted white on a transparent background.
func Mask(bounds image.Rectangle, regions []typeset.Region, padding int) *image.RGBA {
	mask := image.NewRGBA(bounds)
	draw.Draw(mask, mask.Bounds(), image.Transparent, image.Point{}, draw.Src)
	for _, region := range regions {
		rect := region.Rect().Inset(-padding).Intersect(bounds)
		draw.Draw(mask, rect, image.White, image.Point{}, draw.Src)
	}
	return mask
}

func multipartBody(img image.Image, mask image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range []struct {
		name  string
		image image.Image
	}{
		{"image", img},
		{"mask", mask},
	} {
		part, err := writer.CreateFormFile(field.name, field.name+".png")
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if err := png.Encode(part, field.image); err != nil {
			return nil, "", fmt.Errorf("failed to encode %s: %w", field.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

func copyImage(img image.Image) image.Image {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)
	return result
}
