package grammar

import "fmt"

// Op identifies an operator independently of how it is spelled.
type Op uint8

const (
	OpNone Op = iota

	// Unary
	OpNot
	OpNeg
	OpBitNot

	// Binary
	OpMul
	OpDiv
	OpRem
	OpAdd
	OpSub
	OpShl
	OpShr
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpBitAnd
	OpBitXor
	OpBitOr
	OpAnd
	OpOr

	opCount
)

var opNames = [opCount]string{
	OpNone:   "none",
	OpNot:    "not",
	OpNeg:    "neg",
	OpBitNot: "bit_not",
	OpMul:    "mul",
	OpDiv:    "div",
	OpRem:    "rem",
	OpAdd:    "add",
	OpSub:    "sub",
	OpShl:    "shl",
	OpShr:    "shr",
	OpLt:     "lt",
	OpGt:     "gt",
	OpLe:     "le",
	OpGe:     "ge",
	OpEq:     "eq",
	OpNe:     "ne",
	OpBitAnd: "bit_and",
	OpBitXor: "bit_xor",
	OpBitOr:  "bit_or",
	OpAnd:    "and",
	OpOr:     "or",
}

func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// ParseOp resolves an operator from its configuration name.
func ParseOp(name string) (Op, error) {
	for i := OpNot; i < opCount; i++ {
		if opNames[i] == name {
			return i, nil
		}
	}
	return OpNone, fmt.Errorf("unknown operator %q", name)
}

// Associativity tells whether an operator prefixes one operand or joins two.
type Associativity uint8

const (
	Binary Associativity = iota
	Unary
)

func (a Associativity) String() string {
	if a == Unary {
		return "unary"
	}
	return "binary"
}

// ParseAssociativity resolves an associativity from its configuration name.
func ParseAssociativity(name string) (Associativity, error) {
	switch name {
	case "unary":
		return Unary, nil
	case "binary":
		return Binary, nil
	default:
		return Binary, fmt.Errorf("unknown associativity %q", name)
	}
}

// Operator is one row of the operator table.
//
// Lower priority values bind tighter. Binary operators of equal priority
// associate left to right.
type Operator struct {
	Symbol        string
	Op            Op
	Priority      int
	Associativity Associativity
}

// IsUnary reports whether the operator prefixes a single operand.
func (o Operator) IsUnary() bool {
	return o.Associativity == Unary
}

func (o Operator) String() string {
	return fmt.Sprintf("%s(%s, %s, %d)", o.Symbol, o.Op, o.Associativity, o.Priority)
}
