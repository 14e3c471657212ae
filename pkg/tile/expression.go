package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is one entry of the operation set available to arithmetic tiers.
type Operation int

const (
	Identity Operation = iota
	Add
	Subtract
	Multiply
	Divide
	Negate
)

var operationNames = [...]string{
	Identity: "identity",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Negate:   "negate",
}

var operationSymbols = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

// Operations returns the full six-entry operation set in index order.
func Operations() []Operation {
	return []Operation{Identity, Add, Subtract, Multiply, Divide, Negate}
}

func (op Operation) String() string {
	if op >= 0 && int(op) < len(operationNames) {
		return operationNames[op]
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Arity returns the number of operands op takes.
func (op Operation) Arity() int {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return 2
	default:
		return 1
	}
}

// ParseOperation resolves an operation from its name.
func ParseOperation(s string) (Operation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range operationNames {
		if n == name {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (op Operation) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operation) UnmarshalText(b []byte) error {
	parsed, err := ParseOperation(string(b))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Expression is an operation applied to its operands.
type Expression struct {
	Op       Operation `json:"op"`
	Operands []float64 `json:"operands"`
}

// Eval computes the value of the expression.
func (e Expression) Eval() float64 {
	a := e.operand(0)
	switch e.Op {
	case Add:
		return a + e.operand(1)
	case Subtract:
		return a - e.operand(1)
	case Multiply:
		return a * e.operand(1)
	case Divide:
		return a / e.operand(1)
	case Negate:
		return -a
	default:
		return a
	}
}

// String renders the display text: "a", "a + b", "a - b", "a * b", "a / b"
// or "-a".
func (e Expression) String() string {
	a := FormatNumber(e.operand(0))
	switch e.Op {
	case Add, Subtract, Multiply, Divide:
		return a + " " + operationSymbols[e.Op] + " " + FormatNumber(e.operand(1))
	case Negate:
		return "-" + a
	default:
		return a
	}
}

func (e Expression) operand(i int) float64 {
	if i < len(e.Operands) {
		return e.Operands[i]
	}
	return 0
}

// FormatNumber renders v with the fewest digits that round-trip, so integral
// values print without a decimal point.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
