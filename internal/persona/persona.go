// Package persona defines the voice styles a phrase can be spoken in.
package persona

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/schollz/closestmatch"
)

type Persona string

const (
	Polite       Persona = "Polite"
	Sarcastic    Persona = "Sarcastic"
	Professional Persona = "Professional"
)

// Default is the persona preselected by clients.
const Default = Polite

// Info describes a persona for display.
type Info struct {
	ID          Persona `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

var catalog = []Info{
	{ID: Polite, Label: "Polite", Description: "Gentle & courteous"},
	{ID: Sarcastic, Label: "Sarcastic", Description: "Witty & biting"},
	{ID: Professional, Label: "Professional", Description: "Clear & formal"},
}

// All returns the personas in display order.
func All() []Persona {
	out := make([]Persona, len(catalog))
	for i, info := range catalog {
		out[i] = info.ID
	}
	return out
}

// Catalog returns display metadata for every persona.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

func (p Persona) Valid() bool {
	for _, info := range catalog {
		if info.ID == p {
			return true
		}
	}
	return false
}

func (p Persona) String() string {
	return string(p)
}

// Info returns display metadata, zero Info for unknown personas.
func (p Persona) Info() Info {
	for _, info := range catalog {
		if info.ID == p {
			return info
		}
	}
	return Info{}
}

// Parse matches s case-insensitively. Unknown names get a suggestion
// in the error when one is close enough.
func Parse(s string) (Persona, error) {
	s = strings.TrimSpace(s)
	for _, info := range catalog {
		if strings.EqualFold(string(info.ID), s) {
			return info.ID, nil
		}
	}
	if suggestion := Suggest(s); suggestion != "" {
		return "", fmt.Errorf("unknown persona %q (did you mean %s?)", s, suggestion)
	}
	return "", fmt.Errorf("unknown persona %q (choose one of %s)", s, joined())
}

// Suggest returns the closest persona to s, or "" when nothing is close.
func Suggest(s string) Persona {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = strings.ToLower(string(info.ID))
	}
	cm := closestmatch.New(names, []int{2})
	best := cm.Closest(strings.ToLower(s))
	for _, info := range catalog {
		if strings.ToLower(string(info.ID)) == best {
			return info.ID
		}
	}
	return ""
}

func joined() string {
	names := make([]string, len(catalog))
	for i, info := range catalog {
		names[i] = string(info.ID)
	}
	return strings.Join(names, ", ")
}

// MarshalJSON rejects personas outside the catalog.
func (p Persona) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown persona %q", string(p))
	}
	return json.Marshal(string(p))
}

func (p *Persona) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("persona must be a string: %w", err)
	}
	for _, info := range catalog {
		if string(info.ID) == s {
			*p = info.ID
			return nil
		}
	}
	return fmt.Errorf("unknown persona %q", s)
}

// Modulation holds delivery hints for engines that accept them.
type Modulation struct {
	SpeakingRate float64
	Pitch        float64
}

func (p Persona) Modulation() Modulation {
	switch p {
	case Sarcastic:
		return Modulation{SpeakingRate: 0.95, Pitch: -1.5}
	case Professional:
		return Modulation{SpeakingRate: 1.0, Pitch: -1.0}
	case Polite:
		return Modulation{SpeakingRate: 0.95, Pitch: 1.0}
	default:
		return Modulation{SpeakingRate: 1.0}
	}
}
