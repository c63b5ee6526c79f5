package feature

import (
	"sort"
	"strings"
)

// Capability is a sub-capability a feature offers, decided server-side.
type Capability string

// Capabilities, in the order their navigation entries are emitted.
const (
	CapabilityList        Capability = "list"
	CapabilityCreate      Capability = "create"
	CapabilityAssignments Capability = "assignments"
	CapabilitySchedules   Capability = "schedules"
	CapabilityTypes       Capability = "types"
)

var capabilityOrder = map[Capability]int{
	CapabilityList:        0,
	CapabilityCreate:      1,
	CapabilityAssignments: 2,
	CapabilitySchedules:   3,
	CapabilityTypes:       4,
}

// AllCapabilities lists every known capability in emission order.
var AllCapabilities = []Capability{
	CapabilityList,
	CapabilityCreate,
	CapabilityAssignments,
	CapabilitySchedules,
	CapabilityTypes,
}

func (c Capability) Valid() bool {
	_, ok := capabilityOrder[c]
	return ok
}

// Feature is a catalog capability enabled (or not) for a school.
type Feature struct {
	ID           string       `json:"id" db:"id" validate:"required"`
	Key          string       `json:"key" db:"key" validate:"max=100"`
	Name         string       `json:"name" db:"name"`
	Description  string       `json:"description" db:"description"`
	Enabled      bool         `json:"enabled" db:"enabled"`
	Capabilities []Capability `json:"capabilities,omitempty" db:"-"`
}

// CapabilitySet returns the known capabilities of f, de-duplicated and in emission order.
func (f Feature) CapabilitySet() []Capability {
	if len(f.Capabilities) == 0 {
		return nil
	}
	seen := make(map[Capability]bool, len(f.Capabilities))
	caps := make([]Capability, 0, len(f.Capabilities))
	for _, c := range f.Capabilities {
		c = Capability(strings.ToLower(strings.TrimSpace(string(c))))
		if !c.Valid() || seen[c] {
			continue
		}
		seen[c] = true
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return capabilityOrder[caps[i]] < capabilityOrder[caps[j]] })
	return caps
}

// Enabled filters out disabled features, preserving order.
func Enabled(features []Feature) []Feature {
	enabled := make([]Feature, 0, len(features))
	for _, f := range features {
		if f.Enabled {
			enabled = append(enabled, f)
		}
	}
	return enabled
}
