package domain

// Archetype is one of the four fixed communication-style labels.
// The set is closed; values are never created at runtime.
type Archetype string

const (
	ArchetypeAnalyst     Archetype = "Analyst"
	ArchetypeConnector   Archetype = "Connector"
	ArchetypeLeader      Archetype = "Leader"
	ArchetypeHiddenVoice Archetype = "Hidden Voice"
)

// AllArchetypes returns the four archetypes in canonical enumeration order.
// This order is the deterministic fallback when scores are equal.
func AllArchetypes() []Archetype {
	return []Archetype{
		ArchetypeAnalyst,
		ArchetypeConnector,
		ArchetypeLeader,
		ArchetypeHiddenVoice,
	}
}

// IsValid reports whether a is one of the four known archetypes.
func (a Archetype) IsValid() bool {
	switch a {
	case ArchetypeAnalyst, ArchetypeConnector, ArchetypeLeader, ArchetypeHiddenVoice:
		return true
	}
	return false
}

// ArchetypeProfile carries the display metadata the questions endpoint
// exposes alongside the catalog. Full coaching profiles stay with the website.
type ArchetypeProfile struct {
	Archetype Archetype `json:"archetype"`
	Name      string    `json:"name"`
	Subtitle  string    `json:"subtitle"`
	Color     string    `json:"color"`
}

// ArchetypeProfiles returns display metadata for all four archetypes,
// in enumeration order.
func ArchetypeProfiles() []ArchetypeProfile {
	return []ArchetypeProfile{
		{ArchetypeAnalyst, "The Analyst", "The Clarity Archetype", "#3B82F6"},
		{ArchetypeConnector, "The Connector", "The Empathy Archetype", "#F97316"},
		{ArchetypeLeader, "The Leader", "The Impact Archetype", "#8B5CF6"},
		{ArchetypeHiddenVoice, "The Hidden Voice", "The Potential Archetype", "#10B981"},
	}
}
