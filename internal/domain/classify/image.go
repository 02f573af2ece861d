package classify

import (
	"encoding/base64"
	"strings"
)

// DecodeImage decodes the image payload submitted by the capture page.
// Browsers send a base64 data URL ("data:image/jpeg;base64,..."); a bare
// base64 string is accepted too. Returns ErrBadImage when the payload
// cannot be decoded or is empty.
func DecodeImage(payload string) ([]byte, error) {
	if payload == "" {
		return nil, ErrBadImage
	}
	if strings.HasPrefix(payload, "data:") {
		_, encoded, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, ErrBadImage
		}
		payload = encoded
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, WrapBadImage(err)
	}
	if len(raw) == 0 {
		return nil, ErrBadImage
	}
	return raw, nil
}
