package geom

// Interval is a half-open range [Begin, End). Payloads are attached by the
// caller (entities.Allocation, entities.Space, ...) rather than carried
// inline, mirroring the `intervaltree.Interval(begin, end, data)` shape of
// the original Python router.
//
// Interval is not safe as a map key: Decimal embeds a *big.Int, so struct
// equality (and thus map-key equality) is pointer identity on that field,
// not numeric value equality. Always compare intervals with Equal, and use
// a slice-scan or an explicitly keyed wrapper instead of map[Interval]V.
type Interval struct {
	Begin Decimal
	End   Decimal
}

// NewInterval builds an Interval, not validating Begin <= End: callers that
// need a non-degenerate interval check that themselves (mirrors the
// original's unchecked `Interval(begin, end)` constructor).
func NewInterval(begin, end Decimal) Interval {
	return Interval{Begin: begin, End: end}
}

// Overlaps reports whether iv and other share any point: begin <= x < end
// for some x in both.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Begin.LessThan(other.End) && other.Begin.LessThan(iv.End)
}

// ContainsPoint reports whether x falls in [Begin, End).
func (iv Interval) ContainsPoint(x Decimal) bool {
	return !x.LessThan(iv.Begin) && x.LessThan(iv.End)
}

// OverlapSize returns the length of the shared sub-interval, or zero if
// iv and other don't overlap.
func (iv Interval) OverlapSize(other Interval) Decimal {
	lo := Max(iv.Begin, other.Begin)
	hi := Min(iv.End, other.End)
	if hi.LessThan(lo) {
		return Zero
	}
	return hi.Sub(lo)
}

// Equal compares Begin and End exactly (value equality, not representation
// equality — two Decimals constructed differently but mathematically equal
// compare equal here).
func (iv Interval) Equal(other Interval) bool {
	return iv.Begin.Equal(other.Begin) && iv.End.Equal(other.End)
}

// Length returns End - Begin.
func (iv Interval) Length() Decimal {
	return iv.End.Sub(iv.Begin)
}

// Union returns the smallest interval spanning both iv and other.
func (iv Interval) Union(other Interval) Interval {
	return Interval{Begin: Min(iv.Begin, other.Begin), End: Max(iv.End, other.End)}
}
