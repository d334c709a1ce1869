// Package tableau implements a unified signed semantic tableau engine
// supporting multiple propositional and quantifier-free first-order
// logics (CPL, WK3, wKrQ, and FDE) behind a single rule-driven scheduler.
//
// The package is layered bottom-up: small, immutable value types (Term,
// Formula, Sign, SignedFormula) at the bottom, a pluggable registry of
// expansion rules above them, a Branch that owns the mutable per-branch
// search state, and an Engine that drives the whole construction to a
// fixpoint.
package tableau

import "fmt"

// Term represents a first-order term: a constant, a variable, or
// (optionally) a function application. Terms are immutable; structural
// equality is by name and, for Function, by recursive structure.
type Term interface {
	// String renders the term for diagnostics and model output.
	String() string

	// Equal reports whether two terms are structurally identical.
	Equal(other Term) bool

	// IsVariable reports whether this term is a free logic variable.
	IsVariable() bool
}

// Constant is a first-order individual constant, identified by name.
type Constant struct {
	Name string
}

// NewConstant creates a constant with the given name.
func NewConstant(name string) Constant { return Constant{Name: name} }

func (c Constant) String() string { return c.Name }

// Equal reports structural equality with another term.
func (c Constant) Equal(other Term) bool {
	o, ok := other.(Constant)
	return ok && o.Name == c.Name
}

// IsVariable always returns false for constants.
func (c Constant) IsVariable() bool { return false }

// Variable is a first-order variable bound only by a restricted
// quantifier; it never appears free in a well-formed initial formula.
type Variable struct {
	Name string
}

// NewVariable creates a variable with the given name.
func NewVariable(name string) Variable { return Variable{Name: name} }

func (v Variable) String() string { return v.Name }

// Equal reports structural equality with another term.
func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && o.Name == v.Name
}

// IsVariable always returns true for variables.
func (v Variable) IsVariable() bool { return true }

// Function is an optional compound term: a function symbol applied to a
// list of argument terms. The minimal first-order surface in spec.md §3
// does not require Function terms; they are provided so a caller that
// needs them (e.g. to model restricted-quantifier guards over structured
// domains) can use the same substitution machinery as constants.
type Function struct {
	Name string
	Args []Term
}

// NewFunction creates a function term from a name and argument terms.
func NewFunction(name string, args ...Term) Function {
	return Function{Name: name, Args: append([]Term(nil), args...)}
}

func (f Function) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	s := f.Name + "("
	for i, a := range f.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Equal reports structural equality with another term, recursing into
// argument lists.
func (f Function) Equal(other Term) bool {
	o, ok := other.(Function)
	if !ok || o.Name != f.Name || len(o.Args) != len(f.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// IsVariable always returns false for function terms.
func (f Function) IsVariable() bool { return false }

// substituteTerm replaces every occurrence of the variable named
// varName with replacement, recursing through Function arguments.
func substituteTerm(t Term, varName string, replacement Term) Term {
	switch v := t.(type) {
	case Variable:
		if v.Name == varName {
			return replacement
		}
		return v
	case Function:
		newArgs := make([]Term, len(v.Args))
		changed := false
		for i, a := range v.Args {
			na := substituteTerm(a, varName, replacement)
			newArgs[i] = na
			if !na.Equal(a) {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return Function{Name: v.Name, Args: newArgs}
	default:
		return t
	}
}

// termKey returns a stable string key for a term, used for hashing and
// map indexing. It is not meant to be parsed back into a Term.
func termKey(t Term) string {
	switch v := t.(type) {
	case Constant:
		return "c:" + v.Name
	case Variable:
		return "v:" + v.Name
	case Function:
		key := "f:" + v.Name + "("
		for i, a := range v.Args {
			if i > 0 {
				key += ","
			}
			key += termKey(a)
		}
		return key + ")"
	default:
		return fmt.Sprintf("?:%v", t)
	}
}
