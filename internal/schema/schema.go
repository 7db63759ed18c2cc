package schema

import (
	"math"
	"math/big"
	"regexp"
	"strings"
)

type Kind int

const (
	String Kind = iota
	Int
	Infinite
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Infinite:
		return "infinite"
	default:
		return "string"
	}
}

// integerPattern also admits a signed "Infinity"; see Infinite.
var integerPattern = regexp.MustCompile(`^[-+]?(\d+|Infinity)$`)

// Value is a classified cell.
type Value struct {
	Kind Kind
	Raw  string   // cell text as found
	Int  *big.Int // set when Kind == Int
	Neg  bool     // sign of an Infinite value
}

// Classify decides whether a cell is an integer. Digits with an optional sign become Int
// (exact, any width). "Infinity" with an optional sign becomes Infinite. Everything else,
// including decimals and the empty string, stays a String.
func Classify(raw string) Value {
	if !integerPattern.MatchString(raw) {
		return Value{Kind: String, Raw: raw}
	}
	if strings.HasSuffix(raw, "Infinity") {
		return Value{Kind: Infinite, Raw: raw, Neg: raw[0] == '-'}
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "+"), 10)
	if !ok {
		return Value{Kind: String, Raw: raw}
	}
	return Value{Kind: Int, Raw: raw, Int: n}
}

// Numeric reports whether the cell matched the integer pattern.
func (v Value) Numeric() bool { return v.Kind != String }

// Float returns the value as a float64: ±Inf for Infinite, NaN for String.
func (v Value) Float() float64 {
	switch v.Kind {
	case Int:
		f, _ := new(big.Float).SetInt(v.Int).Float64()
		return f
	case Infinite:
		if v.Neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	default:
		return math.NaN()
	}
}

// Literal is the canonical decimal form of an Int ("+007" -> "7", "-0" -> "0").
// Other kinds return Raw.
func (v Value) Literal() string {
	if v.Kind == Int {
		return v.Int.String()
	}
	return v.Raw
}
