package sexp

import (
	"testing"

	"github.com/OpenTraceLab/netbom/pkg/kicad/sexp/kicadsexp"
)

// Helper to parse s-expression from string
func parseSexp(t *testing.T, input string) kicadsexp.Sexp {
	t.Helper()
	sexps, err := kicadsexp.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression %q: %v", input, err)
	}
	if len(sexps) == 0 {
		t.Fatalf("No s-expressions parsed from %q", input)
	}
	return sexps[0]
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    string
		wantErr bool
	}{
		{
			name:  "get first element",
			input: `(ref "R1")`,
			index: 0,
			want:  "ref",
		},
		{
			name:  "get second element",
			input: `(ref "R1")`,
			index: 1,
			want:  "R1",
		},
		{
			name:  "quoted string with spaces",
			input: `(source "/home/user/my board.kicad_sch")`,
			index: 1,
			want:  "/home/user/my board.kicad_sch",
		},
		{
			name:    "index out of bounds",
			input:   `(ref "R1")`,
			index:   5,
			wantErr: true,
		},
		{
			name:    "list at index",
			input:   `(comp (ref "R1"))`,
			index:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			got, err := GetString(s, tt.index)

			if tt.wantErr {
				if err == nil {
					t.Errorf("GetString() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("GetString() unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	s := parseSexp(t, `(code "42")`)
	got, err := GetInt(s, 1)
	if err != nil {
		t.Fatalf("GetInt() unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("GetInt() = %d, want 42", got)
	}

	if _, err := GetInt(parseSexp(t, `(code abc)`), 1); err == nil {
		t.Error("GetInt() expected error for non-numeric value")
	}
}

func TestFindNode(t *testing.T) {
	s := parseSexp(t, `(comp (ref "R1") (value "10k") value (fields (field (name "A") "1") (field (name "B") "2")))`)

	node, found := FindNode(s, "value")
	if !found {
		t.Fatal("FindNode(value) not found")
	}
	if v, _ := GetString(node, 1); v != "10k" {
		t.Errorf("FindNode(value) = %q, want 10k", v)
	}

	if _, found := FindNode(s, "footprint"); found {
		t.Error("FindNode(footprint) should not be found")
	}

	fields, found := FindNode(s, "fields")
	if !found {
		t.Fatal("FindNode(fields) not found")
	}
	if got := len(FindAllNodes(fields, "field")); got != 2 {
		t.Errorf("FindAllNodes(field) = %d, want 2", got)
	}
}

func TestGetKeyedString(t *testing.T) {
	s := parseSexp(t, `(libsource (lib "Device") (part "R") (description))`)

	tests := []struct {
		key  string
		want string
	}{
		{"lib", "Device"},
		{"part", "R"},
		{"description", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		if got := GetKeyedString(s, tt.key); got != tt.want {
			t.Errorf("GetKeyedString(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGetListItems(t *testing.T) {
	s := parseSexp(t, `(footprints (fp "R_*") (fp "R?"))`)
	items := GetListItems(s)
	if len(items) != 2 {
		t.Fatalf("GetListItems() returned %d items, want 2", len(items))
	}
	if v, _ := GetString(items[1], 1); v != "R?" {
		t.Errorf("second fp = %q, want R?", v)
	}
}
