package domain

// PriceRange is an accumulated [Min, Max] price constraint. Raw preserves the
// text the range was parsed from (e.g. "$20", "30 dollars").
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Raw string  `json:"raw,omitempty"`
}

// Exclusions are negative constraints accumulated across turns. The slices are
// insertion-ordered and deduplicated so that scans over them are deterministic.
type Exclusions struct {
	Brands     []string `json:"brands,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Colors     []string `json:"colors,omitempty"`
	PriceFloor *float64 `json:"price_floor,omitempty"`
}

// Empty reports whether no exclusion of any kind is active.
func (e Exclusions) Empty() bool {
	return len(e.Brands) == 0 && len(e.Categories) == 0 && len(e.Colors) == 0 && e.PriceFloor == nil
}

// Clone returns a deep copy so merged states never alias a previous turn's slices.
func (e Exclusions) Clone() Exclusions {
	out := Exclusions{
		Brands:     append([]string(nil), e.Brands...),
		Categories: append([]string(nil), e.Categories...),
		Colors:     append([]string(nil), e.Colors...),
	}
	if e.PriceFloor != nil {
		floor := *e.PriceFloor
		out.PriceFloor = &floor
	}
	return out
}

// PreferenceState is the accumulated slot memory for one conversation.
// Empty string means the slot is unset. Color and ColorGroup are mutually
// exclusive: a color group is a coarser alternative to a specific shade.
//
// One instance belongs to exactly one conversation. Merge returns a fresh
// value; nothing mutates a state in place.
type PreferenceState struct {
	Category   string      `json:"category,omitempty"`
	Brand      string      `json:"brand,omitempty"`
	Color      string      `json:"color,omitempty"`
	ColorGroup string      `json:"color_group,omitempty"`
	Price      *PriceRange `json:"price,omitempty"`

	// NoBrandPreference records an explicit "any brand is fine" answer so the
	// brand clarification is not asked again.
	NoBrandPreference bool `json:"no_brand_preference,omitempty"`

	Exclusions Exclusions `json:"exclusions,omitempty"`
}

// IntentDelta is the structured output of one resolution pass: the same shape
// as the preference slots, but each field means "detected this turn". Unset
// fields never overwrite accumulated state.
type IntentDelta struct {
	Category          string
	Brand             string
	Color             string
	ColorGroup        string
	Price             *PriceRange
	NoBrandPreference bool
	Exclusions        Exclusions
}

// InclusionCount returns how many inclusion slots the delta carries. Color and
// ColorGroup count as one slot since a resolver only ever sets one of them.
func (d IntentDelta) InclusionCount() int {
	n := 0
	if d.Category != "" {
		n++
	}
	if d.Brand != "" {
		n++
	}
	if d.Color != "" || d.ColorGroup != "" {
		n++
	}
	if d.Price != nil {
		n++
	}
	return n
}
