package diff

// Result classifies one (target, whitespace-mode) comparison: either the two
// snapshot branches have no difference under the target's path, or they do
// and the rendered HTML lives at a relative location. The absence of a diff
// is an expected outcome, not an error, and is kept distinct from a missing
// location.
type Result struct {
	location string
	hasDiff  bool
}

// NoDifference is the result of a comparison with no changes
func NoDifference() Result {
	return Result{}
}

// Difference is the result of a comparison whose rendered diff lives at the
// given location, relative to the artifact root
func Difference(location string) Result {
	return Result{location: location, hasDiff: true}
}

// HasDifference reports whether the comparison found any change
func (r Result) HasDifference() bool {
	return r.hasDiff
}

// Location returns the relative path of the rendered diff; empty when there
// is no difference
func (r Result) Location() string {
	return r.location
}
