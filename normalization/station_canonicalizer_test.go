package normalization

import "testing"

func TestCanonicalStationName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases and trims", "  Rangoon ", "rangoon"},
		{"plain name passes through", "Lucknow", "lucknow"},
		{"burma alias", "India (British Burma)", "rangoon"},
		{"burma alias with artifact", "India (British Burma)+G143", "rangoon"},
		{"seetabuldee variant", "Seetabuldee", "sitabaldi (nagpur)"},
		{"sitabaldi variant", "Sitabaldi", "sitabaldi (nagpur)"},
		{"canonical sitabaldi", "Sitabaldi (Nagpur)", "sitabaldi (nagpur)"},
		{"empty", "", ""},
		{"placeholder", "None", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalStationName(tt.raw); got != tt.want {
				t.Errorf("CanonicalStationName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCanonicalStationNameIdempotent(t *testing.T) {
	inputs := []string{"  Sitabaldi ", "Seetabuldee", "India (British Burma)", "Lucknow", "Rangoon"}
	for _, input := range inputs {
		once := CanonicalStationName(input)
		twice := CanonicalStationName(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCanonicalStationNameCaseInsensitive(t *testing.T) {
	if CanonicalStationName("  Sitabaldi ") != CanonicalStationName("sitabaldi") {
		t.Error("canonicalization is not case/whitespace-insensitive")
	}
}

func TestAliasPairsConverge(t *testing.T) {
	pairs := [][2]string{
		{"Seetabuldee", "Sitabaldi (Nagpur)"},
		{"India (British Burma)", "Rangoon"},
		{"India (British Burma)+G143", "Rangoon"},
	}
	for _, pair := range pairs {
		if CanonicalStationName(pair[0]) != CanonicalStationName(pair[1]) {
			t.Errorf("alias %q and canonical %q do not converge: %q vs %q",
				pair[0], pair[1], CanonicalStationName(pair[0]), CanonicalStationName(pair[1]))
		}
	}
}

func TestStationDisplayName(t *testing.T) {
	tests := []struct {
		canonical string
		want      string
	}{
		{"sitabaldi (nagpur)", "Sitabaldi (Nagpur)"},
		{"rangoon", "Rangoon"},
		{"meean meer", "Meean Meer"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StationDisplayName(tt.canonical); got != tt.want {
			t.Errorf("StationDisplayName(%q) = %q, want %q", tt.canonical, got, tt.want)
		}
	}
}
