package model

// FilterSelection holds the canonical display names selected in each
// filter category. Order is preserved from the URL.
type FilterSelection struct {
	BonusTypes []string `json:"bonusTypes"`
	Bookmakers []string `json:"bookmakers"`
	Advanced   []string `json:"advanced"`
}

// IsEmpty reports whether no filter is selected.
func (s FilterSelection) IsEmpty() bool {
	return len(s.BonusTypes) == 0 && len(s.Bookmakers) == 0 && len(s.Advanced) == 0
}

// Count returns the total number of selected filters across categories.
func (s FilterSelection) Count() int {
	return len(s.BonusTypes) + len(s.Bookmakers) + len(s.Advanced)
}

// CombinationFilter is a transient decomposition of a hyphen-joined path
// segment carrying two or more filter slugs with no category delimiters.
type CombinationFilter struct {
	Parts    []string `json:"parts"`
	Original string   `json:"original"`
}

// CombinationType classifies the combination by its part count.
func (c CombinationFilter) CombinationType() string {
	switch n := len(c.Parts); {
	case n == 2:
		return "2-way"
	case n == 3:
		return "3-way"
	case n == 4:
		return "4-way"
	case n >= 5:
		return "5-way+"
	default:
		return "unknown"
	}
}

// FilterOption is a selectable option within a filter category.
type FilterOption struct {
	Name string `json:"name"`
}

// OptionUniverse holds the filter options valid for one country.
type OptionUniverse struct {
	BonusTypes     []FilterOption `json:"bonusTypes"`
	Bookmakers     []FilterOption `json:"bookmakers"`
	PaymentMethods []FilterOption `json:"paymentMethods"`
	Licenses       []FilterOption `json:"licenses"`
}

// Advanced flattens payment methods and licenses into the combined
// "advanced" category used by the URL codec.
func (u *OptionUniverse) Advanced() []FilterOption {
	out := make([]FilterOption, 0, len(u.PaymentMethods)+len(u.Licenses))
	out = append(out, u.PaymentMethods...)
	out = append(out, u.Licenses...)
	return out
}
