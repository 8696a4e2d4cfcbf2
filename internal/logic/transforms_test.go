package logic

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/openmohaa/diabotical-leaderboard/internal/models"
	"github.com/openmohaa/diabotical-leaderboard/internal/testutils"
)

const twoEntries = `[{"user_id":"A","country":"dk","rating":2246},{"user_id":"B","country":"","rating":2216}]`

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		filter models.Filter
		want   models.Result
		json   string
	}{
		{
			name:   "default dump",
			filter: models.NoFilter{},
			json:   `[{"country":"dk","rating":2246},{"country":"","rating":2216}]`,
		},
		{
			name:   "nil filter dumps",
			filter: nil,
			json:   `[{"country":"dk","rating":2246},{"country":"","rating":2216}]`,
		},
		{
			name:   "user found",
			filter: models.ByUserID{UserID: "A"},
			json:   `{"Entry":{"country":"dk","rating":2246}}`,
		},
		{
			name:   "user not found",
			filter: models.ByUserID{UserID: "Z"},
			want:   models.Message(models.MsgUserNotFound),
		},
		{
			name:   "user id is case sensitive",
			filter: models.ByUserID{UserID: "a"},
			want:   models.Message(models.MsgUserNotFound),
		},
		{
			name:   "country found",
			filter: models.ByCountry{Country: "dk"},
			want:   models.Count(1),
		},
		{
			name:   "empty country matches empty",
			filter: models.ByCountry{Country: ""},
			want:   models.Count(1),
		},
		{
			name:   "country not found",
			filter: models.ByCountry{Country: "ru"},
			want:   models.Message(models.MsgCountryNotFound),
		},
		{
			name:   "country is case sensitive",
			filter: models.ByCountry{Country: "DK"},
			want:   models.Message(models.MsgCountryNotFound),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := testutils.MustEntries(t, twoEntries)
			got := Apply(entries, tt.filter)

			if tt.want != nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %#v, want %#v", got, tt.want)
			}
			if tt.json != "" {
				if s := marshal(t, got); s != tt.json {
					t.Errorf("Apply() = %s, want %s", s, tt.json)
				}
			}
		})
	}
}

func TestSearchByID_FirstMatchWins(t *testing.T) {
	entries := testutils.MustEntries(t, `[{"user_id":"A","country":"dk","n":1},{"user_id":"A","country":"ru","n":2}]`)

	got, ok := SearchByID(entries, "A").(models.SingleEntry)
	if !ok {
		t.Fatalf("SearchByID() = %T, want SingleEntry", got)
	}
	if s := marshal(t, got.Entry); s != `{"country":"dk","n":1}` {
		t.Errorf("SearchByID() = %s", s)
	}
}

func TestSearchByID_SampleEntries(t *testing.T) {
	entries := testutils.SampleEntries(t)

	got, ok := SearchByID(entries, "b325363ffe6d46c8840c951b334cc09c").(models.SingleEntry)
	if !ok {
		t.Fatalf("SearchByID() = %T, want SingleEntry", got)
	}
	want := `{"name":"enesy","country":"dk","match_type":2,"rating":"2246","rank_tier":40,"rank_position":1,"match_count":48,"match_wins":42}`
	if s := marshal(t, got.Entry); s != want {
		t.Errorf("SearchByID() = %s, want %s", s, want)
	}
}

func TestCountByCountry_NonStringCountryIgnored(t *testing.T) {
	entries := testutils.MustEntries(t, `[{"user_id":"A","country":"dk"},{"user_id":"B","country":7},{"user_id":"C"}]`)
	if got := CountByCountry(entries, "dk"); got != models.Count(1) {
		t.Errorf("CountByCountry() = %#v, want 1", got)
	}
}

// Transforms must leave their input untouched so the same fetch result can be
// reused.
func TestTransforms_DoNotMutateInput(t *testing.T) {
	entries := testutils.MustEntries(t, twoEntries)
	before := marshal(t, entries)

	filters := []models.Filter{
		models.NoFilter{},
		models.ByUserID{UserID: "A"},
		models.ByCountry{Country: "dk"},
	}
	for _, f := range filters {
		first := marshal(t, Apply(entries, f))
		second := marshal(t, Apply(entries, f))
		if first != second {
			t.Errorf("%T: second call = %s, first = %s", f, second, first)
		}
	}

	if after := marshal(t, entries); after != before {
		t.Errorf("input changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestDefaultDump_Empty(t *testing.T) {
	got := DefaultDump(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("DefaultDump(nil) = %#v, want empty list", got)
	}
}
