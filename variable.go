package bigm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VariableKind tells what role a tableau column plays.
type VariableKind int

const (
	Decision VariableKind = iota
	Slack
	Surplus
	Artificial
)

var kindPrefix = [...]string{
	Decision:   "x",
	Slack:      "S",
	Surplus:    "E",
	Artificial: "A",
}

func (k VariableKind) String() string {
	switch k {
	case Decision:
		return "decision"
	case Slack:
		return "slack"
	case Surplus:
		return "surplus"
	case Artificial:
		return "artificial"
	default:
		return "unknown"
	}
}

// Variable identifies a tableau column. Index is 1-based within its kind,
// so the second slack variable is Variable{Slack, 2} and renders as S2.
type Variable struct {
	Kind  VariableKind
	Index int
}

// String renders the display label: x1, S1, E1 or A1.
func (v Variable) String() string {
	if v.Kind < Decision || v.Kind > Artificial {
		return fmt.Sprintf("?%d", v.Index)
	}
	return kindPrefix[v.Kind] + strconv.Itoa(v.Index)
}

// MarshalText implements encoding.TextMarshaler so variables serialize as their labels.
func (v Variable) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText parses a label produced by String.
func (v *Variable) UnmarshalText(text []byte) error {
	parsed, err := ParseVariable(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariable is the inverse of Variable.String.
func ParseVariable(label string) (Variable, error) {
	for kind, prefix := range kindPrefix {
		if !strings.HasPrefix(label, prefix) {
			continue
		}
		idx, err := strconv.Atoi(label[len(prefix):])
		if err != nil || idx < 1 {
			break
		}
		return Variable{Kind: VariableKind(kind), Index: idx}, nil
	}
	return Variable{}, errors.Errorf("bigm: malformed variable label %q", label)
}
