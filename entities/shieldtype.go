package entities

import "strings"

// ShieldType classifies what kind of shield, if any, a net requires. It
// wraps a plain string name rather than subclassing string the way the
// Python original does (`class ShieldType(str)`), since Go has no
// inheritance; the name is what determines IsNone/IsGroupShield.
type ShieldType struct {
	Name string
}

// NewShieldType builds a ShieldType from a raw name, treating an empty
// string the same as "no shield requested".
func NewShieldType(name string) ShieldType {
	return ShieldType{Name: name}
}

// IsNone reports whether this net requires no shield at all.
func (t ShieldType) IsNone() bool {
	return t.Name == ""
}

// IsGroupShield reports whether this shield type is a group shield (one
// shield wrapping an entire net group rather than each net individually),
// signaled by the letter 'G' appearing anywhere in the name.
func (t ShieldType) IsGroupShield() bool {
	return strings.Contains(t.Name, "G")
}

func (t ShieldType) String() string {
	return t.Name
}
