package pexels

import (
	"encoding/json"
	"fmt"
	"strconv"

	errs "pexelsearch/pkg/errors"
)

const (
	// PhotosKey is the response field holding the result array
	PhotosKey = "photos"

	// OriginalQueryKey is added to every photo with the query that found it
	OriginalQueryKey = "original_query"
)

// Photo is a photo object exactly as the API returned it, plus
// OriginalQueryKey. Only the accessors below look inside it.
type Photo map[string]any

// ID returns the numeric photo id
func (p Photo) ID() (int64, bool) {
	switch v := p["id"].(type) {
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil
	}
	return 0, false
}

// OriginalQuery returns the search query that produced the photo
func (p Photo) OriginalQuery() string {
	return p.str(OriginalQueryKey)
}

// Photographer returns the credited photographer name
func (p Photo) Photographer() string {
	return p.str("photographer")
}

// URL returns the photo's page on pexels.com
func (p Photo) URL() string {
	return p.str("url")
}

// Src returns the image URL for a size variant such as "original" or "medium"
func (p Photo) Src(size string) string {
	src, ok := p["src"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := src[size].(string)
	return s
}

func (p Photo) str(key string) string {
	s, _ := p[key].(string)
	return s
}

// apiErrorMessage pulls an in-band error message out of a response body
func apiErrorMessage(body map[string]any) string {
	for _, key := range []string{"error", "message", "status"} {
		if v, ok := body[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// extractPhotos returns the photos array, each tagged with query
func extractPhotos(body map[string]any, query string) ([]Photo, error) {
	raw, ok := body[PhotosKey]
	if !ok {
		msg := "response has no photos field"
		if apiMsg := apiErrorMessage(body); apiMsg != "" {
			msg = fmt.Sprintf("%s: %s", msg, apiMsg)
		}
		return nil, errs.New(errs.ErrorTypeParsing, msg)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, errs.New(errs.ErrorTypeParsing, fmt.Sprintf("photos field is %T, not an array", raw))
	}

	photos := make([]Photo, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errs.New(errs.ErrorTypeParsing, fmt.Sprintf("photo %d is %T, not an object", i, item))
		}
		obj[OriginalQueryKey] = query
		photos = append(photos, Photo(obj))
	}
	return photos, nil
}
