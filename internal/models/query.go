package models

import "fmt"

// ArgumentError reports invalid query input. It is raised before any
// network call is made.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Filter narrows a query. It is one of NoFilter, ByUserID or ByCountry, so a
// request can never carry both a user id and a country.
type Filter interface {
	isFilter()
}

// NoFilter dumps the fetched entries.
type NoFilter struct{}

// ByUserID looks up a single entry by its opaque user id.
type ByUserID struct {
	UserID string
}

// ByCountry counts entries with the given country code.
type ByCountry struct {
	Country string
}

func (NoFilter) isFilter()  {}
func (ByUserID) isFilter()  {}
func (ByCountry) isFilter() {}

// QueryRequest is a validated query. Build it with NewQueryRequest; the
// fields are read-only by convention once constructed.
type QueryRequest struct {
	mode   GameMode
	count  int
	filter Filter
}

// NewQueryRequest validates mode and count and returns the request. A nil
// filter means NoFilter.
func NewQueryRequest(mode GameMode, count int, filter Filter) (QueryRequest, error) {
	if _, err := ParseGameMode(string(mode)); err != nil {
		return QueryRequest{}, err
	}
	if count < 1 || count > MaxEntryCount {
		return QueryRequest{}, &ArgumentError{Field: "count", Reason: fmt.Sprintf("%d is outside 1..%d", count, MaxEntryCount)}
	}
	if filter == nil {
		filter = NoFilter{}
	}
	return QueryRequest{mode: mode, count: count, filter: filter}, nil
}

func (q QueryRequest) Mode() GameMode { return q.mode }
func (q QueryRequest) Count() int     { return q.count }

// Filter returns the request's filter, never nil.
func (q QueryRequest) Filter() Filter {
	if q.filter == nil {
		return NoFilter{}
	}
	return q.filter
}
