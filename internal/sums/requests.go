package sums

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Supported request body media types.
const (
	MediaTypeJSON = "application/json"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// ReadBody decodes the request body according to its Content-Type, reading at
// most maxBytes. Bodies of any other media type are not read and decode as an
// empty object.
func ReadBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (Value, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case MediaTypeJSON, MediaTypeForm:
	default:
		return ObjectValue(nil), nil
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		return Value{}, fmt.Errorf("read body: %w", err)
	}

	if mediaType == MediaTypeForm {
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return FromForm(values), nil
	}

	return Parse(data)
}
