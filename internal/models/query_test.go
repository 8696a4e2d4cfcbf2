package models

import (
	"errors"
	"testing"
)

func TestParseGameMode(t *testing.T) {
	for _, m := range GameModes {
		got, err := ParseGameMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseGameMode(%q) = %q, %v", m, got, err)
		}
	}

	for _, bad := range []string{"", "R_WO", "r_ca_3", " r_wo"} {
		if _, err := ParseGameMode(bad); err == nil {
			t.Errorf("ParseGameMode(%q) succeeded, want error", bad)
		}
	}
}

func TestNewQueryRequest(t *testing.T) {
	tests := []struct {
		name    string
		mode    GameMode
		count   int
		filter  Filter
		wantErr bool
	}{
		{"defaults", ModeMacguffin, DefaultEntryCount, nil, false},
		{"max count", ModeWipeout, MaxEntryCount, ByCountry{Country: "dk"}, false},
		{"min count", ModeClanArena1, 1, ByUserID{UserID: "b325363ffe6d46c8840c951b334cc09c"}, false},
		{"zero count", ModeMacguffin, 0, nil, true},
		{"too many", ModeMacguffin, 501, nil, true},
		{"bad mode", GameMode("r_duel"), 20, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQueryRequest(tt.mode, tt.count, tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewQueryRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var argErr *ArgumentError
				if !errors.As(err, &argErr) {
					t.Errorf("error %T is not *ArgumentError", err)
				}
				return
			}
			if q.Mode() != tt.mode || q.Count() != tt.count {
				t.Errorf("got mode=%q count=%d", q.Mode(), q.Count())
			}
			if q.Filter() == nil {
				t.Error("Filter() returned nil")
			}
		})
	}
}

func TestZeroQueryRequestFilter(t *testing.T) {
	var q QueryRequest
	if _, ok := q.Filter().(NoFilter); !ok {
		t.Errorf("zero request filter = %T, want NoFilter", q.Filter())
	}
}
