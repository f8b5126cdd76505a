package pricing

import "github.com/xy-planning-network/ridewitus"

// Defaults returns the starter catalog: one free and two premium tiers.
//
// priceRefs maps tier IDs to billing price references;
// a premium tier missing from it falls back to a placeholder reference.
func Defaults(priceRefs map[string]string) []ridewitus.PricingTier {
	ref := func(id string) *string {
		r, ok := priceRefs[id]
		if !ok || r == "" {
			r = "price_" + id
		}

		return &r
	}

	return []ridewitus.PricingTier{
		{
			ID:       "free",
			Name:     "Free",
			Interval: ridewitus.Monthly,
			Features: []string{
				"Track walking, running, biking, and driving",
				"Local data storage",
				"CSV export and import",
				"Basic analytics",
			},
			Position: 0,
		},
		{
			ID:       "monthly",
			Name:     "Premium Monthly",
			Price:    9.99,
			Interval: ridewitus.Monthly,
			PriceRef: ref("monthly"),
			Features: []string{
				"All Free features",
				"Cloud data storage",
				"Sync across devices",
				"Advanced analytics",
				"Priority support",
			},
			Position: 1,
		},
		{
			ID:       "annual",
			Name:     "Premium Annual",
			Price:    99.99,
			Interval: ridewitus.Yearly,
			PriceRef: ref("annual"),
			Features: []string{
				"All Premium Monthly features",
				"2 months free",
				"Early access to new features",
			},
			Position: 2,
		},
	}
}
