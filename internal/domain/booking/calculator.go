package booking

import (
	"fmt"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// Calculator performs the booking arithmetic: hours, prices, discounts, tax,
// and refunds. Percentage inputs outside [0, 100] are integrity violations
// and fail immediately.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() Calculator {
	return Calculator{}
}

// TotalHours sums the schedules' durations in fractional hours.
func (Calculator) TotalHours(schedules []Schedule) float64 {
	var total float64
	for _, s := range schedules {
		total += float64(s.DurationMinutes()) / 60.0
	}
	return total
}

// TotalPrice returns hours times the hourly rate when one is supplied, else
// the package's flat base price.
func (Calculator) TotalPrice(totalHours, hourlyRate, basePrice float64) float64 {
	if hourlyRate > 0 {
		return totalHours * hourlyRate
	}
	return basePrice
}

// DiscountAmount returns the discount for the given percentage of the price.
func (c Calculator) DiscountAmount(price, discountPercent float64) (float64, error) {
	if err := validatePercentage("discount", discountPercent); err != nil {
		return 0, err
	}
	return price * discountPercent / 100, nil
}

// PriceAfterDiscount returns the price with the percentage discount applied.
func (c Calculator) PriceAfterDiscount(price, discountPercent float64) (float64, error) {
	discount, err := c.DiscountAmount(price, discountPercent)
	if err != nil {
		return 0, err
	}
	return price - discount, nil
}

// TaxAmount returns the tax due on the price at the given rate.
func (Calculator) TaxAmount(price, taxPercent float64) (float64, error) {
	if err := validatePercentage("tax", taxPercent); err != nil {
		return 0, err
	}
	return price * taxPercent / 100, nil
}

// FinalPriceWithTax returns the price with tax added.
func (c Calculator) FinalPriceWithTax(price, taxPercent float64) (float64, error) {
	tax, err := c.TaxAmount(price, taxPercent)
	if err != nil {
		return 0, err
	}
	return price + tax, nil
}

// RefundAmount returns what is owed back after cancellation: the paid amount
// less a cancellation fee taken as a percentage of the total price, never
// negative.
func (Calculator) RefundAmount(totalPrice, paidAmount, cancellationFeePercent float64) (float64, error) {
	if err := validatePercentage("cancellation fee", cancellationFeePercent); err != nil {
		return 0, err
	}

	fee := totalPrice * cancellationFeePercent / 100
	refund := paidAmount - fee
	if refund < 0 {
		return 0, nil
	}
	return refund, nil
}

func validatePercentage(name string, value float64) error {
	if value < 0 || value > 100 {
		return domain.NewValidationError(
			fmt.Sprintf("%s percentage must be between 0 and 100, got %g", name, value))
	}
	return nil
}
