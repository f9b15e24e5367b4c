package detection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	detections []Detection
	err        error
	calls      int
}

func (f *fakeDetector) Detect(ctx context.Context, image []byte) ([]Detection, error) {
	f.calls++
	return f.detections, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "upload.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/process_image", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response.Error
}

func TestHandlerReturnsMergedDetections(t *testing.T) {
	detector := &fakeDetector{detections: []Detection{
		box(10, 10, 100, 30, "Olá", 0.9),
		box(12, 40, 90, 60, "mundo", 0.8),
		box(300, 300, 320, 320, "noise", 0.05),
	}}
	handler := NewHandler(detector, DefaultMergeOptions())
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, uploadRequest(t, "image", pngBytes(t)))

	require.Equal(t, http.StatusOK, recorder.Code)
	var detections []Detection
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detections))
	assert.Equal(t, []Detection{box(10, 10, 100, 60, "Olá mundo", 0.9)}, detections)
}

func TestHandlerEmptyResultIsArray(t *testing.T) {
	handler := NewHandler(&fakeDetector{}, DefaultMergeOptions())
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, uploadRequest(t, "image", pngBytes(t)))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name          string
		request       func(t *testing.T) *http.Request
		detector      *fakeDetector
		expectedCode  int
		expectedError string
	}{
		{
			name: "missing image field",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", pngBytes(t))
			},
			detector:      &fakeDetector{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "No image file provided",
		},
		{
			name: "not multipart",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/process_image", bytes.NewBufferString("{}"))
			},
			detector:      &fakeDetector{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "No image file provided",
		},
		{
			name: "undecodable image",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "image", []byte("definitely not an image"))
			},
			detector:      &fakeDetector{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid image format",
		},
		{
			name: "detector failure",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "image", pngBytes(t))
			},
			detector:      &fakeDetector{err: errors.New("ocr backend down")},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to detect text",
		},
		{
			name: "wrong method",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/process_image", nil)
			},
			detector:      &fakeDetector{},
			expectedCode:  http.StatusMethodNotAllowed,
			expectedError: "Method not allowed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			NewHandler(tc.detector, DefaultMergeOptions()).ServeHTTP(recorder, tc.request(t))

			assert.Equal(t, tc.expectedCode, recorder.Code)
			assert.Equal(t, tc.expectedError, decodeError(t, recorder))
		})
	}
}
