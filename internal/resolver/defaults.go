package resolver

// Variant hard defaults. These are the lowest-precedence rung of the
// resolution chain and must only ever be applied here, never written back
// into stored elements.

const (
	defaultFontSize   = "16px"
	defaultFontWeight = "normal"
	defaultFontFamily = "Inter"
	defaultTextColor  = "#000000"
	defaultTextAlign  = "left"

	defaultShapeFill   = "#E5E7EB"
	defaultShapeStroke = "#9CA3AF"
	defaultStrokeWidth = 2.0

	defaultBorderRadius = "0px"
	defaultOpacity      = 1.0
)

// missingValue is the literal placeholder a data element renders when no
// bound value is available. Never the empty string, so layout spacing stays
// stable.
const missingValue = "--"
