package profile

import "fmt"

// Mode selects one of the two generation strategies.
type Mode int

const (
	ModeTiered Mode = iota
	ModeCustom
)

func (m Mode) String() string {
	if m == ModeCustom {
		return "custom"
	}
	return "tiered"
}

// Selection is the immutable input handed to the generator and kept by the
// session for restarts.
type Selection struct {
	Mode   Mode
	Tier   Tier
	Custom Custom
}

// ForTier returns a tiered selection after checking the tier is playable.
func ForTier(t Tier) (Selection, error) {
	tier, err := ParseTier(string(t))
	if err != nil {
		return Selection{}, err
	}
	return Selection{Mode: ModeTiered, Tier: tier}, nil
}

// ForCustom returns a custom selection after validating its levels.
func ForCustom(c Custom) (Selection, error) {
	if err := c.Validate(); err != nil {
		return Selection{}, err
	}
	return Selection{Mode: ModeCustom, Custom: c}, nil
}

// Validate re-checks a selection built without the constructors.
func (s Selection) Validate() error {
	switch s.Mode {
	case ModeTiered:
		_, err := ParseTier(string(s.Tier))
		return err
	case ModeCustom:
		return s.Custom.Validate()
	default:
		return fmt.Errorf("unknown mode %d", int(s.Mode))
	}
}

func (s Selection) String() string {
	if s.Mode == ModeCustom {
		return "custom " + s.Custom.String()
	}
	return string(s.Tier)
}
