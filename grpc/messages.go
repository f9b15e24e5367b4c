package grpc

import (
	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

type SignInRequest struct {
	GoogleOpenIdToken string `json:"googleOpenIdToken,omitempty"`
}

func (x *SignInRequest) GetGoogleOpenIdToken() string {
	if x != nil {
		return x.GoogleOpenIdToken
	}
	return ""
}

type SignInResponse struct {
	Token string `json:"token,omitempty"`
}

func (x *SignInResponse) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

type DetectTextRequest struct {
	// Encoded image. PNG, JPEG, GIF and WebP are accepted.
	Image []byte `json:"image,omitempty"`
}

func (x *DetectTextRequest) GetImage() []byte {
	if x != nil {
		return x.Image
	}
	return nil
}

type DetectTextResponse struct {
	Detections []detection.Detection `json:"detections"`
}

func (x *DetectTextResponse) GetDetections() []detection.Detection {
	if x != nil {
		return x.Detections
	}
	return nil
}

type TranslateTextRequest struct {
	Text           string   `json:"text,omitempty"`
	TargetLanguage Language `json:"targetLanguage,omitempty"`
}

func (x *TranslateTextRequest) GetText() string {
	if x != nil {
		return x.Text
	}
	return ""
}

func (x *TranslateTextRequest) GetTargetLanguage() Language {
	if x != nil {
		return x.TargetLanguage
	}
	return Language_LANGUAGE_UNSPECIFIED
}

type TranslateTextResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (x *TranslateTextResponse) GetTranslatedText() string {
	if x != nil {
		return x.TranslatedText
	}
	return ""
}

type RetypesetImageRequest struct {
	Image          []byte   `json:"image,omitempty"`
	TargetLanguage Language `json:"targetLanguage,omitempty"`
	// Hex color used to clear each region. E.g., "#ffffff"
	BackgroundColor string `json:"backgroundColor,omitempty"`
	// Remove the source text with the inpainting service instead of a flat fill.
	Inpaint bool `json:"inpaint,omitempty"`
}

func (x *RetypesetImageRequest) GetImage() []byte {
	if x != nil {
		return x.Image
	}
	return nil
}

func (x *RetypesetImageRequest) GetTargetLanguage() Language {
	if x != nil {
		return x.TargetLanguage
	}
	return Language_LANGUAGE_UNSPECIFIED
}

func (x *RetypesetImageRequest) GetBackgroundColor() string {
	if x != nil {
		return x.BackgroundColor
	}
	return ""
}

func (x *RetypesetImageRequest) GetInpaint() bool {
	if x != nil {
		return x.Inpaint
	}
	return false
}

type TranslatedRegion struct {
	BBox           [2][2]float64 `json:"bbox"`
	Text           string        `json:"text"`
	TranslatedText string        `json:"translatedText"`
	FontSize       float64       `json:"fontSize"`
}

func NewTranslatedRegion(region typeset.TranslatedRegion, fontSize float64) *TranslatedRegion {
	return &TranslatedRegion{
		BBox: [2][2]float64{
			{region.TopLeft.X, region.TopLeft.Y},
			{region.BottomRight.X, region.BottomRight.Y},
		},
		Text:           region.SourceText,
		TranslatedText: region.TranslatedText,
		FontSize:       fontSize,
	}
}

// Region drops the font size; it is recomputed when the region is drawn.
func (x *TranslatedRegion) Region() typeset.TranslatedRegion {
	if x == nil {
		return typeset.TranslatedRegion{}
	}
	return typeset.TranslatedRegion{
		Region: typeset.Region{
			TopLeft:     typeset.Point{X: x.BBox[0][0], Y: x.BBox[0][1]},
			BottomRight: typeset.Point{X: x.BBox[1][0], Y: x.BBox[1][1]},
			SourceText:  x.Text,
		},
		TranslatedText: x.TranslatedText,
	}
}

type RetypesetImageResponse struct {
	// E.g., "data:image/png;base64,iVBORw0..."
	UriImage string              `json:"uriImage,omitempty"`
	Regions  []*TranslatedRegion `json:"regions"`
}

func (x *RetypesetImageResponse) GetUriImage() string {
	if x != nil {
		return x.UriImage
	}
	return ""
}

func (x *RetypesetImageResponse) GetRegions() []*TranslatedRegion {
	if x != nil {
		return x.Regions
	}
	return nil
}
