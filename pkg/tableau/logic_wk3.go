package tableau

// Weak-Kleene truth tables. Unlike strong Kleene, any undefined operand
// forces the whole compound undefined — these three functions are the
// ground truth every WK3 rule below is mechanically derived from.
func wk3And(a, b WK3Sign) WK3Sign {
	if a == WK3Undefined || b == WK3Undefined {
		return WK3Undefined
	}
	if a == WK3True && b == WK3True {
		return WK3True
	}
	return WK3False
}

func wk3Or(a, b WK3Sign) WK3Sign {
	if a == WK3Undefined || b == WK3Undefined {
		return WK3Undefined
	}
	if a == WK3True || b == WK3True {
		return WK3True
	}
	return WK3False
}

func wk3Implies(a, b WK3Sign) WK3Sign {
	if a == WK3Undefined || b == WK3Undefined {
		return WK3Undefined
	}
	if a == WK3False {
		return WK3True
	}
	return b
}

// wk3CaseSplit enumerates every (left, right) sign pair whose truth table
// produces result, and turns the set of matches into an Expansion: a
// singleton match is an α-rule, several matches form a β-rule. Because
// the weak-Kleene tables are fixed, the number of matches — and hence
// whether a given (connective, sign) rule is linear or branching — is a
// structural property of the connective and target sign alone, never of
// the particular A/B formulas it's applied to.
func wk3CaseSplit(result WK3Sign, table func(WK3Sign, WK3Sign) WK3Sign, left, right Formula) Expansion {
	signs := [3]WK3Sign{WK3True, WK3False, WK3Undefined}
	var branches [][]SignedFormula
	for _, l := range signs {
		for _, rr := range signs {
			if table(l, rr) == result {
				branches = append(branches, []SignedFormula{
					NewSignedFormula(l, left),
					NewSignedFormula(rr, right),
				})
			}
		}
	}
	if len(branches) == 1 {
		return linear(branches[0]...)
	}
	return branching(branches...)
}

// wk3Priority classifies a (connective, sign) rule as alpha or beta by
// running it once against placeholder atoms, since the branch count never
// depends on the actual operands.
func wk3Priority(result WK3Sign, table func(WK3Sign, WK3Sign) WK3Sign) int {
	dummyA, dummyB := NewAtom("_wk3a"), NewAtom("_wk3b")
	exp := wk3CaseSplit(result, table, dummyA, dummyB)
	if exp.IsLinear {
		return PriorityAlpha
	}
	return PriorityBeta
}

func wk3SignIs(sign WK3Sign, kind formulaKind) func(SignedFormula) bool {
	return func(sf SignedFormula) bool {
		s, ok := sf.Sign.(WK3Sign)
		return ok && s == sign && formulaIsKind(sf.Formula, kind)
	}
}

func newWK3Registry() *Registry {
	r := NewRegistry(LogicWK3, []Sign{WK3True, WK3False, WK3Undefined})

	r.AddRule(Rule{
		Name:     "double-negation",
		Priority: PrioritySimplify,
		Applies: func(sf SignedFormula) bool {
			if sf.Sign != Sign(WK3True) {
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
			return linear(NewSignedFormula(WK3True, inner)), nil
		},
	})

	for _, sign := range [3]WK3Sign{WK3True, WK3False, WK3Undefined} {
		sign := sign
		r.AddRule(Rule{
			Name:     "negation-" + sign.String(),
			Priority: PriorityNegation,
			Applies:  wk3SignIs(sign, negationKind),
			Expand: func(sf SignedFormula, _ ExpansionContext) (Expansion, error) {
				operand := sf.Formula.(Negation).Operand
				var result WK3Sign
				switch sign {
				case WK3True:
					result = WK3False
				case WK3False:
					result = WK3True
				default:
					result = WK3Undefined
				}
				return linear(NewSignedFormula(result, operand)), nil
			},
		})
	}

	type binaryRule struct {
		kind  formulaKind
		table func(WK3Sign, WK3Sign) WK3Sign
		name  string
	}
	connectives := [3]binaryRule{
		{conjunctionKind, wk3And, "conjunction"},
		{disjunctionKind, wk3Or, "disjunction"},
		{implicationKind, wk3Implies, "implication"},
	}

	for _, bin := range connectives {
		bin := bin
		for _, sign := range [3]WK3Sign{WK3True, WK3False, WK3Undefined} {
			sign := sign
			r.AddRule(Rule{
				Name:     bin.name + "-" + sign.String(),
				Priority: wk3Priority(sign, bin.table),
				Applies:  wk3SignIs(sign, bin.kind),
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
					return wk3CaseSplit(sign, bin.table, left, right), nil
				},
			})
		}
	}

	return r
}

func init() {
	Register(LogicWK3, newWK3Registry())
}
