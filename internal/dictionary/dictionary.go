// Package dictionary loads the bundled emoji code → description mapping.
//
// The mapping is produced offline by the refresh pipeline (internal/refresh)
// and compiled into the binary, so loading never touches the filesystem or
// the network at runtime.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed codes.json
var codesJSON []byte

var (
	// ErrDataUnavailable indicates the bundled resource is missing or empty.
	ErrDataUnavailable = errors.New("dictionary: bundled emoji data unavailable")

	// ErrMalformedData indicates the bundled resource is not a valid JSON
	// object of string to string.
	ErrMalformedData = errors.New("dictionary: bundled emoji data malformed")
)

// Load decodes the embedded codes.json into a sequence → description map.
// The returned map is freshly allocated on every call; callers treat it as
// read-only after handing it to a matcher.
func Load() (map[string]string, error) {
	if len(codesJSON) == 0 {
		return nil, ErrDataUnavailable
	}
	var codes map[string]string
	if err := json.Unmarshal(codesJSON, &codes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrMalformedData)
	}
	return codes, nil
}
