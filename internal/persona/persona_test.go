package persona

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Persona
	}{
		{"Polite", Polite},
		{"sarcastic", Sarcastic},
		{"  PROFESSIONAL ", Professional},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseUnknownSuggests(t *testing.T) {
	_, err := Parse("sarcastik")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "did you mean Sarcastic") {
		t.Fatalf("error should suggest Sarcastic, got: %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("expected error for empty persona")
	}
	if !strings.Contains(err.Error(), "Polite, Sarcastic, Professional") {
		t.Fatalf("error should list personas, got: %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var body struct {
		Persona Persona `json:"persona"`
	}
	if err := json.Unmarshal([]byte(`{"persona":"Professional"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Persona != Professional {
		t.Fatalf("persona = %q", body.Persona)
	}

	if err := json.Unmarshal([]byte(`{"persona":"Grumpy"}`), &body); err == nil {
		t.Fatal("expected error for unknown persona")
	}

	if _, err := json.Marshal(Persona("Grumpy")); err == nil {
		t.Fatal("expected marshal error for unknown persona")
	}
}

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 3 || all[0] != Polite || all[1] != Sarcastic || all[2] != Professional {
		t.Fatalf("All() = %v", all)
	}
	if got := Sarcastic.Info().Description; got != "Witty & biting" {
		t.Fatalf("description = %q", got)
	}
	if Persona("x").Valid() {
		t.Fatal("unknown persona reported valid")
	}
}
