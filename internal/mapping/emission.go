package mapping

import "fmt"

// EmissionKind says what an Emission asks the pointer to do.
type EmissionKind int

const (
	EmitNone EmissionKind = iota
	EmitMoveAbsolute
	EmitMoveRelative
	EmitPress
	EmitRelease
	EmitScroll
)

var emissionKindNames = [...]string{
	EmitNone:         "none",
	EmitMoveAbsolute: "move_absolute",
	EmitMoveRelative: "move_relative",
	EmitPress:        "press",
	EmitRelease:      "release",
	EmitScroll:       "scroll",
}

func (k EmissionKind) String() string {
	if k < 0 || int(k) >= len(emissionKindNames) {
		return fmt.Sprintf("EmissionKind(%d)", int(k))
	}
	return emissionKindNames[k]
}

// MarshalText encodes the kind by name.
func (k EmissionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *EmissionKind) UnmarshalText(b []byte) error {
	for i, name := range emissionKindNames {
		if name == string(b) {
			*k = EmissionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown emission kind %q", b)
}

// Emission is the result of handling one command.
//
// Both move kinds carry an absolute target pixel in X/Y; the kind only
// records which mode produced it. Scroll is in wheel notches, positive
// scrolls up.
type Emission struct {
	Kind   EmissionKind
	X, Y   int
	Button Button
	Scroll float64
}

// None reports whether the emission asks for nothing.
func (e Emission) None() bool {
	return e.Kind == EmitNone
}
