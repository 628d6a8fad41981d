package pagination

import (
	errs "pexelsearch/pkg/errors"
)

// Policy bounds one accumulation run
type Policy struct {
	Limit      int // total results wanted
	Offset     int // position of the first wanted result
	MaxPerPage int // largest page the API serves, 1..MaxPerPage
}

// Validate rejects policies that cannot drive the loop
func (p Policy) Validate() error {
	switch {
	case p.Limit < 0:
		return errs.InvalidConfig("limit must not be negative, got %d", p.Limit)
	case p.Offset < 0:
		return errs.InvalidConfig("offset must not be negative, got %d", p.Offset)
	case p.MaxPerPage < 1 || p.MaxPerPage > MaxPerPage:
		return errs.InvalidConfig("max per page must be between 1 and %d, got %d", MaxPerPage, p.MaxPerPage)
	}
	return nil
}

// PerPage is the page size the policy requests
func (p Policy) PerPage() int {
	return EffectivePerPage(p.Limit, p.MaxPerPage)
}
