package pexels

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"pexelsearch/pkg/pagination"
)

const (
	// BaseURL is the Pexels API host
	BaseURL = "https://api.pexels.com"

	// SearchPath is the keyword photo search endpoint
	SearchPath = "/v1/search"

	// searchSize is the fixed size filter sent with every search
	searchSize = "1"
)

// SearchParams builds the query parameters for one search page
func SearchParams(query string, w pagination.Window) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("size", searchSize)
	params.Set("page", strconv.Itoa(w.Page))
	params.Set("per_page", strconv.Itoa(w.PerPage))
	return params
}

// SearchURL constructs the URL for one search page
func SearchURL(baseURL, query string, w pagination.Window) string {
	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), SearchPath, SearchParams(query, w).Encode())
}
