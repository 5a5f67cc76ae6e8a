package domain

// DateUnit is the unit of a relative date expression.
type DateUnit int

const (
	UnitDay DateUnit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

// Direction tells whether a relative expression points into the past or future.
type Direction int

const (
	DirectionFuture Direction = iota
	DirectionPast
)

// RelativeExpression is a parsed relative date phrase such as "через 3 дня"
// or "2 weeks ago". It is resolved against an anchor date by the dates package.
type RelativeExpression struct {
	Magnitude int
	Unit      DateUnit
	Direction Direction
}

// Offset returns the signed magnitude.
func (r RelativeExpression) Offset() int {
	if r.Direction == DirectionPast {
		return -r.Magnitude
	}
	return r.Magnitude
}
