package tableau

// newCPLRegistry builds the classical two-valued rule set: the exact nine
// rows of spec.md §4.3's CPL table, one of which is the priority-0
// double-negation simplification.
func newCPLRegistry() *Registry {
	r := NewRegistry(LogicCPL, []Sign{CPLTrue, CPLFalse})

	r.AddRule(Rule{
		Name:     "double-negation",
		Priority: PrioritySimplify,
		Applies: func(sf SignedFormula) bool {
			if sf.Sign != Sign(CPLTrue) {
				return false
			}
			n, ok := sf.Formula.(Negation)
			if !ok {
				return false
			}
			_, ok = n.Operand.(Negation)
			return ok
		},
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			inner := sf.Formula.(Negation).Operand.(Negation).Operand
			return linear(NewSignedFormula(CPLTrue, inner)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "conjunction-true",
		Priority: PriorityAlpha,
		Applies:  cplSignIs(CPLTrue, conjunctionKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			c := sf.Formula.(Conjunction)
			return linear(NewSignedFormula(CPLTrue, c.Left), NewSignedFormula(CPLTrue, c.Right)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "disjunction-false",
		Priority: PriorityAlpha,
		Applies:  cplSignIs(CPLFalse, disjunctionKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			d := sf.Formula.(Disjunction)
			return linear(NewSignedFormula(CPLFalse, d.Left), NewSignedFormula(CPLFalse, d.Right)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "implication-false",
		Priority: PriorityAlpha,
		Applies:  cplSignIs(CPLFalse, implicationKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			i := sf.Formula.(Implication)
			return linear(NewSignedFormula(CPLTrue, i.Left), NewSignedFormula(CPLFalse, i.Right)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "negation-true",
		Priority: PriorityNegation,
		Applies:  cplSignIs(CPLTrue, negationKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			return linear(NewSignedFormula(CPLFalse, sf.Formula.(Negation).Operand)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "negation-false",
		Priority: PriorityNegation,
		Applies:  cplSignIs(CPLFalse, negationKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			return linear(NewSignedFormula(CPLTrue, sf.Formula.(Negation).Operand)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "conjunction-false",
		Priority: PriorityBeta,
		Applies:  cplSignIs(CPLFalse, conjunctionKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			c := sf.Formula.(Conjunction)
			return branching(
				[]SignedFormula{NewSignedFormula(CPLFalse, c.Left)},
				[]SignedFormula{NewSignedFormula(CPLFalse, c.Right)},
			), nil
		},
	})

	r.AddRule(Rule{
		Name:     "disjunction-true",
		Priority: PriorityBeta,
		Applies:  cplSignIs(CPLTrue, disjunctionKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			d := sf.Formula.(Disjunction)
			return branching(
				[]SignedFormula{NewSignedFormula(CPLTrue, d.Left)},
				[]SignedFormula{NewSignedFormula(CPLTrue, d.Right)},
			), nil
		},
	})

	r.AddRule(Rule{
		Name:     "implication-true",
		Priority: PriorityBeta,
		Applies:  cplSignIs(CPLTrue, implicationKind),
		Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
			i := sf.Formula.(Implication)
			return branching(
				[]SignedFormula{NewSignedFormula(CPLFalse, i.Left)},
				[]SignedFormula{NewSignedFormula(CPLTrue, i.Right)},
			), nil
		},
	})

	return r
}

// formulaKind is used by the small rule-applicability predicates shared
// across the classical-shaped logics (CPL, and T/F of WK3 and wKrQ).
type formulaKind int

const (
	conjunctionKind formulaKind = iota
	disjunctionKind
	implicationKind
	negationKind
)

func formulaIsKind(f Formula, kind formulaKind) bool {
	switch kind {
	case conjunctionKind:
		_, ok := f.(Conjunction)
		return ok
	case disjunctionKind:
		_, ok := f.(Disjunction)
		return ok
	case implicationKind:
		_, ok := f.(Implication)
		return ok
	case negationKind:
		_, ok := f.(Negation)
		return ok
	case restrictedExistsKind:
		_, ok := f.(RestrictedExists)
		return ok
	case restrictedForallKind:
		_, ok := f.(RestrictedForall)
		return ok
	default:
		return false
	}
}

func cplSignIs(sign CPLSign, kind formulaKind) func(SignedFormula) bool {
	return func(sf SignedFormula) bool {
		s, ok := sf.Sign.(CPLSign)
		return ok && s == sign && formulaIsKind(sf.Formula, kind)
	}
}

func init() {
	Register(LogicCPL, newCPLRegistry())
}
