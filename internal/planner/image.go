package planner

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pkordes/travelbook/internal/domain"
)

// ValidateImage accepts an empty string or a base64 data URL whose payload
// is an image. The declared media type is ignored; the bytes are sniffed.
func ValidateImage(dataURL string) error {
	if dataURL == "" {
		return nil
	}
	payload, err := decodeDataURL(dataURL)
	if err != nil {
		return err
	}
	mt := mimetype.Detect(payload)
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%w: image payload is %s", domain.ErrValidation, mt.String())
	}
	return nil
}

func decodeDataURL(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: image must be a data URL", domain.ErrValidation)
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: image must be base64 encoded", domain.ErrValidation)
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: image payload: %v", domain.ErrValidation, err)
	}
	return payload, nil
}
