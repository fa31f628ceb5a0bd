package parcel

import (
	"math"
	"strings"
)

const (
	// BaseRate is charged for every parcel.
	BaseRate = 50.0

	// WeightRate is charged per kilogram.
	WeightRate = 10.0
)

var typeMultipliers = map[string]float64{
	"fragile":  1.5,
	"express":  2.0,
	"document": 0.8,
}

// Fee is the delivery price in whole currency units.
type Fee int64

// Multiplier returns the price multiplier of the parcel type; unknown types cost 1.0.
func (t Type) Multiplier() float64 {
	if m, ok := typeMultipliers[strings.ToLower(t.value)]; ok {
		return m
	}
	return 1.0
}

// CalculateFee prices a parcel as round((BaseRate + weight*WeightRate) * multiplier),
// rounding half away from zero.
//
// Example:
//
//	w, _ := parcel.NewWeight(2)
//	t, _ := parcel.NewType("express")
//	parcel.CalculateFee(w, t) // (50 + 20) * 2 = 140
func CalculateFee(weight Weight, parcelType Type) Fee {
	return Fee(math.Round((BaseRate + weight.Kilograms()*WeightRate) * parcelType.Multiplier()))
}
