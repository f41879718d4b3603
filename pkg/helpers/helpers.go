// Package helpers holds the two utilities exported for reuse outside the tour.
package helpers

// Number is any integer or float type, including defined types over them.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Square returns n*n.
func Square[T Number](n T) T { return n * n }

// FullName joins first and last with a single space.
func FullName(first, last string) string { return first + " " + last }
