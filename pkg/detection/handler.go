package detection

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	ovhttp "github.com/overlingo-project/overlingo/pkg/http"
)

// Matches the 20MB request limit of the OCR backends.
const maxUploadSize = 20 << 20

// Handler serves POST /process_image. The image is read from the multipart
// field "image"; the response is a JSON array of detections or {"error"}.
type Handler struct {
	detector Detector
	options  MergeOptions
}

func NewHandler(detector Detector, options MergeOptions) *Handler {
	return &Handler{
		detector: detector,
		options:  options,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ovhttp.RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("image")
	if err != nil {
		ovhttp.RespondError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	byteImage, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded image")
		ovhttp.RespondError(w, "Failed to read image", http.StatusBadRequest)
		return
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(byteImage)); err != nil {
		ovhttp.RespondError(w, "Invalid image format", http.StatusBadRequest)
		return
	}

	detections, err := h.detector.Detect(r.Context(), byteImage)
	if err != nil {
		log.Error().Err(err).Msg("Failed to detect text")
		ovhttp.RespondError(w, "Failed to detect text", http.StatusInternalServerError)
		return
	}

	result := Postprocess(detections, h.options)
	log.Debug().Int("raw", len(detections)).Int("merged", len(result)).Msg("Detected text regions")
	ovhttp.RespondJSON(w, result, http.StatusOK)
}
