package tableau

// fdePair is the bilattice reading of an FDE sign: whether the formula
// has been asserted true and/or asserted false. T=(1,0), F=(0,1),
// B=(1,1), N=(0,0). Every FDE rule below is derived from the De Morgan
// evaluation of hasT/hasF across a connective, never hand-tabulated.
type fdePair struct{ hasT, hasF bool }

func fdeSignPair(s FDESign) fdePair {
	switch s {
	case FDETrue:
		return fdePair{true, false}
	case FDEFalse:
		return fdePair{false, true}
	case FDEBoth:
		return fdePair{true, true}
	default:
		return fdePair{false, false}
	}
}

var fdeAllSigns = [4]FDESign{FDETrue, FDEFalse, FDEBoth, FDENeither}

// fdeCaseSplit enumerates every (left, right) sign pair whose hasT/hasF
// evaluation under evalT/evalF matches target, producing a singleton
// (α) or multi-branch (β) Expansion exactly as wk3CaseSplit does for
// WK3 — the same generic technique applied to a four-valued bilattice
// instead of a three-valued chain.
func fdeCaseSplit(target FDESign, evalT, evalF func(a, b fdePair) bool, left, right Formula) Expansion {
	targetPair := fdeSignPair(target)
	var branches [][]SignedFormula
	for _, ls := range fdeAllSigns {
		for _, rs := range fdeAllSigns {
			lp, rp := fdeSignPair(ls), fdeSignPair(rs)
			if evalT(lp, rp) == targetPair.hasT && evalF(lp, rp) == targetPair.hasF {
				branches = append(branches, []SignedFormula{
					NewSignedFormula(ls, left),
					NewSignedFormula(rs, right),
				})
			}
		}
	}
	if len(branches) == 1 {
		return linear(branches[0]...)
	}
	return branching(branches...)
}

func fdeAndT(a, b fdePair) bool { return a.hasT && b.hasT }
func fdeAndF(a, b fdePair) bool { return a.hasF || b.hasF }
func fdeOrT(a, b fdePair) bool  { return a.hasT || b.hasT }
func fdeOrF(a, b fdePair) bool  { return a.hasF && b.hasF }
func fdeImpliesT(a, b fdePair) bool { return a.hasF || b.hasT }
func fdeImpliesF(a, b fdePair) bool { return a.hasT && b.hasF }

func fdePriority(target FDESign, evalT, evalF func(a, b fdePair) bool) int {
	dummyA, dummyB := NewAtom("_fdea"), NewAtom("_fdeb")
	exp := fdeCaseSplit(target, evalT, evalF, dummyA, dummyB)
	if exp.IsLinear {
		return PriorityAlpha
	}
	return PriorityBeta
}

func fdeSignIs(sign FDESign, kind formulaKind) func(SignedFormula) bool {
	return func(sf SignedFormula) bool {
		s, ok := sf.Sign.(FDESign)
		return ok && s == sign && formulaIsKind(sf.Formula, kind)
	}
}

// fdeNegationDual swaps hasT/hasF: ¬A has whatever A lacks and lacks
// whatever A has.
func fdeNegationDual(s FDESign) FDESign {
	p := fdeSignPair(s)
	return fdeSignFromPair(fdePair{hasT: p.hasF, hasF: p.hasT})
}

func fdeSignFromPair(p fdePair) FDESign {
	switch {
	case p.hasT && p.hasF:
		return FDEBoth
	case p.hasT:
		return FDETrue
	case p.hasF:
		return FDEFalse
	default:
		return FDENeither
	}
}

func newFDERegistry() *Registry {
	r := NewRegistry(LogicFDE, []Sign{FDETrue, FDEFalse, FDEBoth, FDENeither})

	for _, sign := range fdeAllSigns {
		sign := sign
		r.AddRule(Rule{
			Name:     "negation-" + sign.String(),
			Priority: PriorityNegation,
			Applies:  fdeSignIs(sign, negationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				operand := sf.Formula.(Negation).Operand
				return linear(NewSignedFormula(fdeNegationDual(sign), operand)), nil
			},
		})
	}

	type binaryRule struct {
		kind        formulaKind
		evalT, evalF func(a, b fdePair) bool
		name        string
	}
	connectives := [3]binaryRule{
		{conjunctionKind, fdeAndT, fdeAndF, "conjunction"},
		{disjunctionKind, fdeOrT, fdeOrF, "disjunction"},
		{implicationKind, fdeImpliesT, fdeImpliesF, "implication"},
	}

	for _, bin := range connectives {
		bin := bin
		for _, sign := range fdeAllSigns {
			sign := sign
			r.AddRule(Rule{
				Name:     bin.name + "-" + sign.String(),
				Priority: fdePriority(sign, bin.evalT, bin.evalF),
				Applies:  fdeSignIs(sign, bin.kind),
				Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
					var left, right Formula
					switch f := sf.Formula.(type) {
					case Conjunction:
						left, right = f.Left, f.Right
					case Disjunction:
						left, right = f.Left, f.Right
					case Implication:
						left, right = f.Left, f.Right
					}
					return fdeCaseSplit(sign, bin.evalT, bin.evalF, left, right), nil
				},
			})
		}
	}

	return r
}

func init() {
	Register(LogicFDE, newFDERegistry())
}
