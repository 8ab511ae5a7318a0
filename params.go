package look

// BasicParams are the three user-adjustable scalar corrections delivered
// by the UI layer on interaction. All fields are deltas around neutral:
// the zero value means "no adjustment", and the struct is comparable so
// the previewer's change gate is a single == against the cached value.
type BasicParams struct {
	Contrast   float64 // [-1,1] delta around 1.0
	Brightness float64 // [-1,1] offset
	Saturation float64 // [-1,1] delta around 1.0
}

// IsNeutral reports whether all three adjustments are at their neutral
// value.
func (p BasicParams) IsNeutral() bool {
	return p == BasicParams{}
}
