package engine

// Rules are the gesture tuning constants. They are fixed for the lifetime of
// an engine; hosts populate them from configuration.
type Rules struct {
	// MinDrawSize is the smallest extent (per dimension) a completed draw
	// gesture may have and still commit a shape.
	MinDrawSize float64

	// MinSplitSize is the smallest extent either part of a split may have.
	// A split that would produce a smaller part nudges instead.
	MinSplitSize float64

	// CornerRadius is stamped onto every created shape and inherited by
	// split children. The engine never reads it back.
	CornerRadius float64

	// NudgeDistance is how far a shape is translated when a split is
	// rejected as too small.
	NudgeDistance float64
}

// DefaultRules matches the tuning of the original canvas.
func DefaultRules() Rules {
	return Rules{
		MinDrawSize:   40,
		MinSplitSize:  20,
		CornerRadius:  20,
		NudgeDistance: 10,
	}
}
