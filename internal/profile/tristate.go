package profile

import (
	"bytes"
	"fmt"
)

// TriState is a yes/no answer that may not have been given yet.
// It encodes as JSON null, true or false.
type TriState int8

const (
	Unknown TriState = iota
	Yes
	No
)

func (t TriState) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "-"
	}
}

// MarshalJSON implements json.Marshaler.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*t = Unknown
	case "true":
		*t = Yes
	case "false":
		*t = No
	default:
		return fmt.Errorf("profile: invalid tri-state value %s", data)
	}
	return nil
}

// Flag names one of the profile's yes/no questions.
type Flag string

const (
	FlagHealthInsurance Flag = "hasHealthInsurance"
	FlagLifeInsurance   Flag = "hasLifeInsurance"
	FlagOwnsHouse       Flag = "ownsHouse"
	FlagHealthIssues    Flag = "hasHealthIssues"
)

// Flags lists every flag in form order.
var Flags = []Flag{FlagHealthInsurance, FlagLifeInsurance, FlagOwnsHouse, FlagHealthIssues}

// Flag returns the current answer for f.
func (p *Profile) Flag(f Flag) TriState {
	if ptr := p.flagPtr(f); ptr != nil {
		return *ptr
	}
	return Unknown
}

// SetFlag records an answer. It returns false for an unknown flag.
func (p *Profile) SetFlag(f Flag, v TriState) bool {
	ptr := p.flagPtr(f)
	if ptr == nil {
		return false
	}
	*ptr = v
	return true
}

func (p *Profile) flagPtr(f Flag) *TriState {
	switch f {
	case FlagHealthInsurance:
		return &p.HasHealthInsurance
	case FlagLifeInsurance:
		return &p.HasLifeInsurance
	case FlagOwnsHouse:
		return &p.OwnsHouse
	case FlagHealthIssues:
		return &p.HasHealthIssues
	}
	return nil
}
