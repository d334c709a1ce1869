package tableau

// newWKRQRegistry builds Ferguson's four-signed epistemic rule set: T/F
// mirror the CPL table exactly; M ("may be true") and N ("may be false")
// mirror the same table structurally with M standing in for T and N for
// F, which preserves each connective's truth conditions at the level of
// epistemic possibility instead of classical commitment. Restricted
// quantifier rules are registered only here, since spec.md scopes them to
// wKrQ.
func newWKRQRegistry() *Registry {
	r := NewRegistry(LogicWKRQ, []Sign{WKRQTrue, WKRQFalse, WKRQMay, WKRQNot})

	r.AddRule(Rule{
		Name:     "double-negation",
		Priority: PrioritySimplify,
		Applies: func(sf SignedFormula) bool {
			if sf.Sign != Sign(WKRQTrue) {
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
			return linear(NewSignedFormula(WKRQTrue, inner)), nil
		},
	})

	// The T/F sub-table is a verbatim copy of CPL's shape with WKRQSign
	// values instead of CPLSign; the M/N sub-table mirrors it homomorphically
	// (T -> M, F -> N) per the epistemic-commitment reading above.
	type pair struct{ pos, neg WKRQSign }
	for _, p := range []pair{{WKRQTrue, WKRQFalse}, {WKRQMay, WKRQNot}} {
		p := p
		r.AddRule(Rule{
			Name:     "conjunction-" + p.pos.String(),
			Priority: PriorityAlpha,
			Applies:  wkrqSignIs(p.pos, conjunctionKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				c := sf.Formula.(Conjunction)
				return linear(NewSignedFormula(p.pos, c.Left), NewSignedFormula(p.pos, c.Right)), nil
			},
		})
		r.AddRule(Rule{
			Name:     "disjunction-" + p.neg.String(),
			Priority: PriorityAlpha,
			Applies:  wkrqSignIs(p.neg, disjunctionKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				d := sf.Formula.(Disjunction)
				return linear(NewSignedFormula(p.neg, d.Left), NewSignedFormula(p.neg, d.Right)), nil
			},
		})
		r.AddRule(Rule{
			Name:     "implication-" + p.neg.String(),
			Priority: PriorityAlpha,
			Applies:  wkrqSignIs(p.neg, implicationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				i := sf.Formula.(Implication)
				return linear(NewSignedFormula(p.pos, i.Left), NewSignedFormula(p.neg, i.Right)), nil
			},
		})
		r.AddRule(Rule{
			Name:     "negation-" + p.pos.String(),
			Priority: PriorityNegation,
			Applies:  wkrqSignIs(p.pos, negationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				return linear(NewSignedFormula(p.neg, sf.Formula.(Negation).Operand)), nil
			},
		})
		r.AddRule(Rule{
			Name:     "negation-" + p.neg.String(),
			Priority: PriorityNegation,
			Applies:  wkrqSignIs(p.neg, negationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				return linear(NewSignedFormula(p.pos, sf.Formula.(Negation).Operand)), nil
			},
		})
		r.AddRule(Rule{
			Name:     "conjunction-" + p.neg.String(),
			Priority: PriorityBeta,
			Applies:  wkrqSignIs(p.neg, conjunctionKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				c := sf.Formula.(Conjunction)
				return branching(
					[]SignedFormula{NewSignedFormula(p.neg, c.Left)},
					[]SignedFormula{NewSignedFormula(p.neg, c.Right)},
				), nil
			},
		})
		r.AddRule(Rule{
			Name:     "disjunction-" + p.pos.String(),
			Priority: PriorityBeta,
			Applies:  wkrqSignIs(p.pos, disjunctionKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				d := sf.Formula.(Disjunction)
				return branching(
					[]SignedFormula{NewSignedFormula(p.pos, d.Left)},
					[]SignedFormula{NewSignedFormula(p.pos, d.Right)},
				), nil
			},
		})
		r.AddRule(Rule{
			Name:     "implication-" + p.pos.String(),
			Priority: PriorityBeta,
			Applies:  wkrqSignIs(p.pos, implicationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				i := sf.Formula.(Implication)
				return branching(
					[]SignedFormula{NewSignedFormula(p.neg, i.Left)},
					[]SignedFormula{NewSignedFormula(p.pos, i.Right)},
				), nil
			},
		})
	}

	r.AddRule(Rule{
		Name:     "restricted-exists-true",
		Priority: PriorityQuantifier,
		Applies:  wkrqSignIs(WKRQTrue, restrictedExistsKind),
		Expand: func(sf SignedFormula, ctx ExpansionContext) (Expansion, error) {
			q := sf.Formula.(RestrictedExists)
			witness := ctx.Fresh()
			guard := Substitute(q.Guard, q.Var, witness)
			body := Substitute(q.Body, q.Var, witness)
			return linear(NewSignedFormula(WKRQTrue, guard), NewSignedFormula(WKRQTrue, body)), nil
		},
	})

	r.AddRule(Rule{
		Name:     "restricted-forall-true",
		Priority: PriorityQuantifier,
		Applies:  wkrqSignIs(WKRQTrue, restrictedForallKind),
		Expand: func(sf SignedFormula, ctx ExpansionContext) (Expansion, error) {
			q := sf.Formula.(RestrictedForall)
			constants := ctx.Domain
			if len(constants) == 0 {
				constants = []Term{ctx.Fresh()}
			}
			choices := make([][]SignedFormula, len(constants))
			for i, c := range constants {
				guard := Substitute(q.Guard, q.Var, c)
				body := Substitute(q.Body, q.Var, c)
				choices[i] = []SignedFormula{
					NewSignedFormula(WKRQFalse, guard),
					NewSignedFormula(WKRQTrue, body),
				}
			}
			return branching(crossProduct(choices)...), nil
		},
	})

	return r
}

// crossProduct combines, for each constant's independent two-way choice,
// every joint selection across all constants into one flat branch list —
// the ground-instance expansion spec.md §4.3 describes for restricted
// universals, generalized from one constant to the full domain. See
// DESIGN.md for the combinatorial-cost tradeoff this implies.
func crossProduct(choices [][]SignedFormula) [][]SignedFormula {
	result := [][]SignedFormula{{}}
	for _, choice := range choices {
		var next [][]SignedFormula
		for _, prefix := range result {
			for _, option := range choice {
				branch := append(append([]SignedFormula(nil), prefix...), option)
				next = append(next, branch)
			}
		}
		result = next
	}
	return result
}

func wkrqSignIs(sign WKRQSign, kind formulaKind) func(SignedFormula) bool {
	return func(sf SignedFormula) bool {
		s, ok := sf.Sign.(WKRQSign)
		return ok && s == sign && formulaIsKind(sf.Formula, kind)
	}
}

const (
	restrictedExistsKind formulaKind = 100 + iota
	restrictedForallKind
)

func init() {
	Register(LogicWKRQ, newWKRQRegistry())
}
