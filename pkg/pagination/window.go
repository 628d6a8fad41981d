package pagination

import (
	errs "pexelsearch/pkg/errors"
)

// MaxPerPage is the largest page size the API accepts
const MaxPerPage = 40

// Window is one page request: a 1-based page index and its size
type Window struct {
	Page    int
	PerPage int
}

// EffectivePerPage is min(limit, maxPerPage)
func EffectivePerPage(limit, maxPerPage int) int {
	if limit < maxPerPage {
		return limit
	}
	return maxPerPage
}

// NextPage computes the page to request so that offset falls inside it.
// The offset is rounded down to a multiple of the page size first.
func NextPage(offset, limit, maxPerPage int) (Window, error) {
	perPage := EffectivePerPage(limit, maxPerPage)
	if perPage <= 0 {
		return Window{}, errs.InvalidConfig("page size must be positive, got %d (limit %d, max per page %d)", perPage, limit, maxPerPage)
	}
	if offset < 0 {
		return Window{}, errs.InvalidConfig("offset must not be negative, got %d", offset)
	}

	rounded := offset / perPage * perPage
	return Window{
		Page:    rounded/perPage + 1,
		PerPage: perPage,
	}, nil
}
