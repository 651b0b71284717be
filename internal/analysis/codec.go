package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is the wire encoding of an analysed match.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromContentType picks the format for an HTTP content type, defaulting
// to JSON.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "msgpack") {
		return FormatMsgpack
	}
	return FormatJSON
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk", ".mp":
		return FormatMsgpack
	}
	return FormatJSON
}

// Decode reads one analysed match. Both encodings share the json field names.
func Decode(r io.Reader, format Format) (*Match, error) {
	var m Match
	switch format {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: failed to decode msgpack: %w", ErrMalformedInput, err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: failed to decode json: %w", ErrMalformedInput, err)
		}
	}
	return &m, nil
}

// Encode writes one analysed match.
func Encode(w io.Writer, m *Match, format Format) error {
	switch format {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(m)
	default:
		return json.NewEncoder(w).Encode(m)
	}
}
