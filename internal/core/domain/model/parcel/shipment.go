package parcel

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// MinWeight is the lightest parcel accepted, in kilograms.
const MinWeight = 0.1

// Weight is the parcel weight in kilograms.
type Weight struct {
	value float64
}

// NewWeight rejects NaN, infinities and weights under MinWeight.
func NewWeight(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a number", kg))
	}
	if kg < MinWeight {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%v is less than the minimum of %v", kg, MinWeight),
		)
	}
	return Weight{value: kg}, nil
}

// Kilograms returns the weight as a float.
func (w Weight) Kilograms() float64 {
	return w.value
}

// IsZero reports whether w was never constructed.
func (w Weight) IsZero() bool {
	return w.value == 0
}

// Type is the free-text parcel type, e.g. "fragile". The original spelling is
// kept; fee lookup is case-insensitive.
type Type struct {
	value string
}

// NewType trims s and requires it to be non-empty.
func NewType(s string) (Type, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Type{}, errs.NewValueIsRequiredError("parcelType")
	}
	return Type{value: trimmed}, nil
}

// String returns the type as supplied.
func (t Type) String() string {
	return t.value
}

// Shipment holds the facts a sender supplies when creating a parcel.
type Shipment struct {
	SenderAddress   string
	ReceiverAddress string
	Type            Type
	Weight          Weight
	Description     string
}

// Validate checks that every required fact is present.
func (s Shipment) Validate() error {
	var problems []error
	if strings.TrimSpace(s.SenderAddress) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("senderAddress"))
	}
	if strings.TrimSpace(s.ReceiverAddress) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("receiverAddress"))
	}
	if s.Type.String() == "" {
		problems = append(problems, errs.NewValueIsRequiredError("parcelType"))
	}
	if s.Weight.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("weight"))
	}
	if strings.TrimSpace(s.Description) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("description"))
	}
	return errors.Join(problems...)
}
