package core

// BurdenProfile is a household archetype's spending weights keyed by
// full category name. Weights lie in [0,1]; they are not renormalized
// when categories are missing from the change set, so a partial match
// understates rather than redistributes the burden.
type BurdenProfile struct {
	Name    string
	Weights map[string]float64
}

// BurdenIndex computes the weighted cost increase per archetype:
// the sum of weight x category change over categories present in both
// the profile and the change set. The result is linear in the changes.
// Profiles with no matching category still appear, with a zero index,
// so the chart keeps a stable set of groups.
func BurdenIndex(profiles []BurdenProfile, changes []CategoryChange) []DemographicBurden {
	byCategory := make(map[string]float64, len(changes))
	for _, c := range changes {
		byCategory[c.Category] = c.Change
	}

	out := make([]DemographicBurden, 0, len(profiles))
	for _, p := range profiles {
		var weighted float64
		matched := 0
		for cat, w := range p.Weights {
			change, ok := byCategory[cat]
			if !ok {
				continue
			}
			weighted += w * change
			matched++
		}
		out = append(out, DemographicBurden{
			Group:          p.Name,
			WeightedChange: weighted,
			Categories:     matched,
		})
	}
	return out
}
