package valueobject

import "fmt"

// DimFactor is the volumetric divisor used by international carriers
// (cubic centimeters per kilogram).
const DimFactor = 5000.0

// Dimensions represents physical package dimensions for shipping calculations.
// All measurements are in centimeters.
type Dimensions struct {
	// Length in centimeters.
	Length float64 `json:"length"`

	// Width in centimeters.
	Width float64 `json:"width"`

	// Height in centimeters.
	Height float64 `json:"height"`
}

// NewDimensions creates a new Dimensions value object.
//
// Parameters:
//   - length: Length in centimeters
//   - width: Width in centimeters
//   - height: Height in centimeters
//
// Returns:
//   - Dimensions: new Dimensions value object
func NewDimensions(length, width, height float64) Dimensions {
	return Dimensions{
		Length: length,
		Width:  width,
		Height: height,
	}
}

// Volume calculates the volume in cubic centimeters.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// VolumetricWeight calculates the volumetric (dimensional) weight in kg.
// Light but bulky items are billed by the space they occupy rather than
// their scale weight.
func (d Dimensions) VolumetricWeight() float64 {
	return d.Volume() / DimFactor
}

// Scale returns new Dimensions with every side multiplied by factor.
// Used for size-adjustment keywords ("mini", "xl") in weight estimation.
func (d Dimensions) Scale(factor float64) Dimensions {
	return Dimensions{
		Length: d.Length * factor,
		Width:  d.Width * factor,
		Height: d.Height * factor,
	}
}

// IsEmpty checks if all dimensions are zero.
func (d Dimensions) IsEmpty() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// String returns a formatted string representation (e.g., "30.0x20.0x10.0 cm").
func (d Dimensions) String() string {
	return fmt.Sprintf("%.1fx%.1fx%.1f cm", d.Length, d.Width, d.Height)
}
