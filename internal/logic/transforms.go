package logic

import (
	"github.com/openmohaa/diabotical-leaderboard/internal/models"
)

// Apply runs the transform selected by filter. Entries are never modified;
// results are built from copies.
func Apply(entries []models.Entry, filter models.Filter) models.Result {
	switch f := filter.(type) {
	case models.ByUserID:
		return SearchByID(entries, f.UserID)
	case models.ByCountry:
		return CountByCountry(entries, f.Country)
	default:
		return DefaultDump(entries)
	}
}

// DefaultDump returns every entry without its user_id.
func DefaultDump(entries []models.Entry) models.EntryList {
	out := make(models.EntryList, len(entries))
	for i, e := range entries {
		out[i] = e.Without(models.FieldUserID)
	}
	return out
}

// SearchByID returns the first entry whose user_id equals userID exactly,
// with the id itself removed.
func SearchByID(entries []models.Entry, userID string) models.Result {
	for _, e := range entries {
		if id, ok := e.String(models.FieldUserID); ok && id == userID {
			return models.SingleEntry{Entry: e.Without(models.FieldUserID)}
		}
	}
	return models.Message(models.MsgUserNotFound)
}

// CountByCountry counts entries whose country equals country exactly. Codes
// are compared as given, without case folding.
func CountByCountry(entries []models.Entry, country string) models.Result {
	n := 0
	for _, e := range entries {
		if c, ok := e.String(models.FieldCountry); ok && c == country {
			n++
		}
	}
	if n == 0 {
		return models.Message(models.MsgCountryNotFound)
	}
	return models.Count(n)
}
