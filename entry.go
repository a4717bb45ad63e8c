package promised

// cell is the per-instance state of one property.
type cell struct {
	value     any
	present   bool
	producing bool // keeper is running
}

// entry is one cached value in a Member.
type entry[V any] struct {
	value V
}
