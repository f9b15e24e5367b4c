package harvest

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid data URL")

// DataURL encodes data as "data:<mime>;base64,<payload>".
func DataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL decodes a data URL into its payload and MIME type.
func ParseDataURL(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", ErrInvalidDataURL
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", ErrInvalidDataURL
	}

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", errors.Join(ErrInvalidDataURL, err)
		}
		return data, mimeType, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", errors.Join(ErrInvalidDataURL, err)
	}
	return []byte(data), mimeType, nil
}
