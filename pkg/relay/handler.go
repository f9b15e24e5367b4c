package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/overlingo-project/overlingo/pkg/harvest"
	ovhttp "github.com/overlingo-project/overlingo/pkg/http"
)

// Harvester collects the images of a page.
type Harvester interface {
	HarvestURL(ctx context.Context, pageURL string) ([]string, error)
}

type HarvestRequest struct {
	URL string `json:"url"`
}

type HarvestResponse struct {
	Images  []string `json:"images"`
	Success bool     `json:"success"`
}

type ImagesResponse struct {
	Images []string `json:"images"`
}

type Handler struct {
	relay     *Relay
	harvester Harvester
}

func NewHandler(relay *Relay, harvester Harvester) *Handler {
	return &Handler{relay: relay, harvester: harvester}
}

// Register adds POST /images, GET /images and POST /harvest to r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/images", h.postImages)
	r.Get("/images", h.getImages)
	r.Post("/harvest", h.harvest)
}

func (h *Handler) postImages(w http.ResponseWriter, r *http.Request) {
	var message Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		log.Warn().Err(err).Msg("Ignoring malformed relay message")
	}
	ovhttp.RespondJSON(w, h.relay.Handle(r.Context(), message), http.StatusOK)
}

func (h *Handler) getImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.relay.Images(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read collected images")
		ovhttp.RespondError(w, "Failed to read images", http.StatusInternalServerError)
		return
	}
	ovhttp.RespondJSON(w, ImagesResponse{Images: images}, http.StatusOK)
}

func (h *Handler) harvest(w http.ResponseWriter, r *http.Request) {
	var request HarvestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.URL == "" {
		ovhttp.RespondError(w, "A page url is required", http.StatusBadRequest)
		return
	}

	images, err := h.harvester.HarvestURL(r.Context(), request.URL)
	if errors.Is(err, harvest.ErrForbiddenTarget) {
		log.Warn().Err(err).Str("url", request.URL).Msg("Refused harvest target")
		ovhttp.RespondError(w, "Page url is not allowed", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("url", request.URL).Msg("Failed to harvest page")
		ovhttp.RespondError(w, "Failed to harvest page", http.StatusBadGateway)
		return
	}

	reply := h.relay.Handle(r.Context(), Message{Images: images})
	ovhttp.RespondJSON(w, HarvestResponse{Images: images, Success: reply.Success}, http.StatusOK)
}
