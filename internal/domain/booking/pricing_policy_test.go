package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPricingPolicy_EarlyBirdDiscountPercent(t *testing.T) {
	policy := NewPricingPolicy()
	booked := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 10.0, policy.EarlyBirdDiscountPercent(booked, booked.AddDate(0, 0, 30)))
	assert.Equal(t, 10.0, policy.EarlyBirdDiscountPercent(booked, booked.AddDate(0, 0, 60)))
	assert.Equal(t, 0.0, policy.EarlyBirdDiscountPercent(booked, booked.AddDate(0, 0, 29)))
	assert.Equal(t, 0.0, policy.EarlyBirdDiscountPercent(booked, booked.AddDate(0, 0, 7)))
}

func TestPricingPolicy_MultiChildDiscountPercent(t *testing.T) {
	policy := NewPricingPolicy()

	assert.Equal(t, 0.0, policy.MultiChildDiscountPercent(0))
	assert.Equal(t, 0.0, policy.MultiChildDiscountPercent(1))
	assert.Equal(t, 5.0, policy.MultiChildDiscountPercent(2))
	assert.Equal(t, 10.0, policy.MultiChildDiscountPercent(3))
	assert.Equal(t, 20.0, policy.MultiChildDiscountPercent(5))
}

func TestPricingPolicy_BulkHoursDiscountPercent(t *testing.T) {
	policy := NewPricingPolicy()

	tests := []struct {
		hours    float64
		expected float64
	}{
		{5, 0},
		{9.5, 0},
		{10, 5},
		{19.9, 5},
		{20, 10},
		{25, 10},
		{29.9, 10},
		{30, 15},
		{100, 15},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, policy.BulkHoursDiscountPercent(tt.hours),
			"hours=%v", tt.hours)
	}
}

func TestPricingPolicy_CalculateTotalDiscount(t *testing.T) {
	policy := NewPricingPolicy()
	booked := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("discounts are additive", func(t *testing.T) {
		start := booked.AddDate(0, 0, 45)
		// Early bird 10 + two children 5 + 25 hours 10 = 25%.
		discount := policy.CalculateTotalDiscount(1000, booked, &start, 2, 25)
		assert.Equal(t, 250.0, discount)
	})

	t.Run("nil start date skips early bird", func(t *testing.T) {
		discount := policy.CalculateTotalDiscount(1000, booked, nil, 2, 25)
		assert.Equal(t, 150.0, discount)
	})

	t.Run("combined discount is capped at 50 percent", func(t *testing.T) {
		start := booked.AddDate(0, 0, 45)
		// Early bird 10 + eight children 35 + 30 hours 15 = 60, capped to 50.
		discount := policy.CalculateTotalDiscount(1000, booked, &start, 8, 30)
		assert.Equal(t, 500.0, discount)
	})

	t.Run("no discounts apply", func(t *testing.T) {
		start := booked.AddDate(0, 0, 7)
		discount := policy.CalculateTotalDiscount(1000, booked, &start, 1, 5)
		assert.Equal(t, 0.0, discount)
	})
}
