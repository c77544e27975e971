package entities

// ActionKind is the closed set of turn actions a player can pick
type ActionKind string

// Turn action kinds
const (
	ActionAttack ActionKind = "attack"
	ActionFlee   ActionKind = "flee"
	ActionSearch ActionKind = "search"
)

// ActionKinds lists every valid kind in display order
var ActionKinds = []ActionKind{ActionAttack, ActionFlee, ActionSearch}

// Valid reports whether k is one of the known kinds
func (k ActionKind) Valid() bool {
	for _, known := range ActionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ActionOutcome is the structured result of one free-form action
type ActionOutcome struct {
	Success         bool     `json:"success"`
	Description     string   `json:"description"`
	HPDelta         int      `json:"hp_change"`
	SanityDelta     int      `json:"sanity_change"`
	NewLocationID   string   `json:"new_location_id"`
	DiscoveredItems []string `json:"discovered_items"`
}

// FailedOutcome is substituted whenever the oracle reply cannot be used
func FailedOutcome(description string) *ActionOutcome {
	return &ActionOutcome{
		Success:         false,
		Description:     description,
		NewLocationID:   SameLocation,
		DiscoveredItems: []string{},
	}
}

// MovesTo reports the destination named by the outcome, if any
func (o *ActionOutcome) MovesTo() (string, bool) {
	if o.NewLocationID == "" || o.NewLocationID == SameLocation {
		return "", false
	}
	return o.NewLocationID, true
}
