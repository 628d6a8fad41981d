package pexels

import (
	"bytes"
	"encoding/json"

	errs "pexelsearch/pkg/errors"
)

// Decoder turns a response body into a generic JSON object
type Decoder interface {
	Decode(body []byte) (map[string]any, error)
}

// JSONDecoder decodes with encoding/json, keeping numbers as json.Number
// so photo IDs survive without float rounding.
type JSONDecoder struct{}

// Decode parses body as a single JSON object
func (JSONDecoder) Decode(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeParsing, "failed to parse JSON", err)
	}
	if out == nil {
		return nil, errs.New(errs.ErrorTypeParsing, "response body is not a JSON object")
	}
	if dec.More() {
		return nil, errs.New(errs.ErrorTypeParsing, "unexpected data after JSON object")
	}
	return out, nil
}
