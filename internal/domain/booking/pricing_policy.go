package booking

import "time"

const (
	// earlyBirdMinDays is the minimum gap between booking and first session
	// for the early-bird discount.
	earlyBirdMinDays    = 30
	earlyBirdDiscount   = 10.0
	multiChildDiscount  = 5.0
	maxCombinedDiscount = 50.0
)

// bulkHourTier maps an hour threshold to its discount percentage. Only the
// highest threshold met applies.
type bulkHourTier struct {
	Hours    float64
	Discount float64
}

// Ordered highest threshold first.
var bulkHourTiers = []bulkHourTier{
	{Hours: 30, Discount: 15},
	{Hours: 20, Discount: 10},
	{Hours: 10, Discount: 5},
}

// PricingPolicy decides discount eligibility and amounts. The three discount
// sources are independent and additive; the combined discount is capped after
// summation.
type PricingPolicy struct{}

// NewPricingPolicy creates a PricingPolicy.
func NewPricingPolicy() PricingPolicy {
	return PricingPolicy{}
}

// EarlyBirdDiscountPercent returns 10 when the gap between booking date and
// session start date is at least 30 days, else 0.
func (PricingPolicy) EarlyBirdDiscountPercent(bookingDate, startDate time.Time) float64 {
	if startDate.Sub(bookingDate).Hours() >= earlyBirdMinDays*24 {
		return earlyBirdDiscount
	}
	return 0
}

// MultiChildDiscountPercent returns 5 percent per child beyond the first.
func (PricingPolicy) MultiChildDiscountPercent(childCount int) float64 {
	if childCount <= 1 {
		return 0
	}
	return float64(childCount-1) * multiChildDiscount
}

// BulkHoursDiscountPercent returns the discount of the highest hour threshold
// the booking meets; tiers do not stack.
func (PricingPolicy) BulkHoursDiscountPercent(totalHours float64) float64 {
	for _, tier := range bulkHourTiers {
		if totalHours >= tier.Hours {
			return tier.Discount
		}
	}
	return 0
}

// CalculateTotalDiscount sums every applicable discount and converts it to an
// amount, capping the combined discount at 50% of the base price. A nil start
// date means the early-bird discount cannot apply yet.
func (p PricingPolicy) CalculateTotalDiscount(
	basePrice float64,
	bookingDate time.Time,
	startDate *time.Time,
	childCount int,
	totalHours float64,
) float64 {
	percent := p.MultiChildDiscountPercent(childCount) + p.BulkHoursDiscountPercent(totalHours)
	if startDate != nil {
		percent += p.EarlyBirdDiscountPercent(bookingDate, *startDate)
	}

	if percent > maxCombinedDiscount {
		percent = maxCombinedDiscount
	}
	return basePrice * percent / 100
}
