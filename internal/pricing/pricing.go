// Package pricing computes booking totals. All functions are pure.
package pricing

import (
	"math"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
)

const (
	// TaxRate is the fixed tax applied to the base fare.
	TaxRate = 0.12
	// ExtraBaggageCharge is the flat fee for an extra 23kg checked bag.
	ExtraBaggageCharge = 50.0
	// InsuranceCharge is the flat fee for travel insurance.
	InsuranceCharge = 35.0
)

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotal derives the price breakdown for a base fare and the
// selected add-ons. Rounding is applied at the tax computation only, so
// totals of round-2 inputs stay round-2.
func ComputeTotal(baseFare float64, addOns models.AddOns) models.PriceBreakdown {
	taxes := Round2(baseFare * TaxRate)

	var addOnCharges float64
	if addOns.ExtraBaggage {
		addOnCharges += ExtraBaggageCharge
	}
	if addOns.Insurance {
		addOnCharges += InsuranceCharge
	}

	return models.PriceBreakdown{
		BaseFare:     baseFare,
		Taxes:        taxes,
		AddOnCharges: addOnCharges,
		Total:        baseFare + taxes + addOnCharges,
	}
}
