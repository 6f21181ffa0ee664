package matrix

// ScalarKind is the element precision a problem was produced with.
type ScalarKind uint8

const (
	// Float64 is double precision ("double").
	Float64 ScalarKind = iota
	// Float32 is single precision ("float").
	Float32
)

// ParseScalarKind maps "double" to Float64. Every other name, including an
// empty one, selects Float32.
func ParseScalarKind(name string) ScalarKind {
	if name == "double" {
		return Float64
	}
	return Float32
}

func (k ScalarKind) String() string {
	if k == Float64 {
		return "double"
	}
	return "float"
}

// BitSize returns 64 or 32.
func (k ScalarKind) BitSize() int {
	if k == Float64 {
		return 64
	}
	return 32
}

// Round returns f rounded to the precision of k.
func (k ScalarKind) Round(f float64) float64 {
	if k == Float32 {
		return float64(float32(f))
	}
	return f
}
