package aggregate

import (
	"sort"

	"brasserie/internal/dataset"
)

// PromotionImpact summarizes the measured effect of one promotion code.
type PromotionImpact struct {
	Code             string  `json:"code"`
	Description      string  `json:"description"`
	Redemptions      int     `json:"redemptions"`
	AvgSpendIncrease float64 `json:"avg_spend_increase"`
	TotalImpact      float64 `json:"total_impact"`
}

// MarketingSummary is the rollup of the promotions table.
type MarketingSummary struct {
	TotalRedemptions   int               `json:"total_redemptions"`
	AvgSpendIncrease   float64           `json:"avg_spend_increase"`
	TopBySpendIncrease []PromotionImpact `json:"top_by_spend_increase"`
	TopByRedemptions   []PromotionImpact `json:"top_by_redemptions"`
}

// Marketing computes redemption and spend-lift rollups from the promotions
// table. Total impact per promotion is redemptions times its average spend
// increase.
func Marketing(promos []dataset.Promotion, topN int) MarketingSummary {
	m := MarketingSummary{}

	impacts := make([]PromotionImpact, 0, len(promos))
	var increaseSum float64
	for _, p := range promos {
		m.TotalRedemptions += p.UsedByGuests
		increaseSum += p.AvgSpendIncrease
		impacts = append(impacts, PromotionImpact{
			Code:             p.Code,
			Description:      p.Description,
			Redemptions:      p.UsedByGuests,
			AvgSpendIncrease: round2(p.AvgSpendIncrease),
			TotalImpact:      round2(float64(p.UsedByGuests) * p.AvgSpendIncrease),
		})
	}
	if len(promos) > 0 {
		m.AvgSpendIncrease = round2(increaseSum / float64(len(promos)))
	}

	bySpend := append([]PromotionImpact(nil), impacts...)
	sort.Slice(bySpend, func(i, j int) bool {
		if bySpend[i].AvgSpendIncrease != bySpend[j].AvgSpendIncrease {
			return bySpend[i].AvgSpendIncrease > bySpend[j].AvgSpendIncrease
		}
		return bySpend[i].Code < bySpend[j].Code
	})
	m.TopBySpendIncrease = truncateImpacts(bySpend, topN)

	byUsage := append([]PromotionImpact(nil), impacts...)
	sort.Slice(byUsage, func(i, j int) bool {
		if byUsage[i].Redemptions != byUsage[j].Redemptions {
			return byUsage[i].Redemptions > byUsage[j].Redemptions
		}
		return byUsage[i].Code < byUsage[j].Code
	})
	m.TopByRedemptions = truncateImpacts(byUsage, topN)

	return m
}

func truncateImpacts(impacts []PromotionImpact, n int) []PromotionImpact {
	if n > 0 && len(impacts) > n {
		impacts = impacts[:n]
	}
	return impacts
}
