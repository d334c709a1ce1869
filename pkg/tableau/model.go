package tableau

// Model is one open branch's reading as a valuation: for every atom or
// predicate instance the branch asserts (negated literals contribute no
// entry of their own), a label drawn from the owning logic's
// Sign.Label() vocabulary, plus a default label (spec.md §9 "Open
// question — model defaulting") filled in for every propositional atom
// mentioned anywhere in the initial formulas but never asserted on this
// particular branch.
//
// Defaulting only applies to zero-arity atoms. A predicate's unasserted
// ground instances are not enumerated, since without a fixed universe of
// discourse there is no canonical finite set to default over — see
// DESIGN.md.
type Model struct {
	Logic      string
	Assignment map[string]string
}

// defaultLabel is the label assigned to an atom this branch never
// mentions, chosen per logic: false for CPL (closed-world default),
// undefined for WK3, unknown for wKrQ's M/N gap, neither for FDE's gap.
func defaultLabel(logicName string) string {
	switch logicName {
	case LogicCPL:
		return "false"
	case LogicWK3:
		return "undefined"
	case LogicWKRQ:
		return "unknown"
	case LogicFDE:
		return "neither"
	default:
		return "unknown"
	}
}

// ExtractModel builds a Model from a single open branch. It returns
// ErrModelExtractionFromClosedBranch if the branch is closed.
func ExtractModel(b *Branch, logicName string, knownAtoms []string) (Model, error) {
	if b.IsClosed() {
		return Model{}, newModelExtractionError(b.ID())
	}
	assignment := make(map[string]string)
	for _, sf := range b.SignedFormulas() {
		if !sf.Formula.isLiteral() {
			continue
		}
		if _, isAtom := sf.Formula.(Atom); isAtom {
			assignment[sf.Formula.String()] = sf.Sign.Label()
			continue
		}
		if pred, isPred := sf.Formula.(Predicate); isPred {
			assignment[pred.String()] = sf.Sign.Label()
			continue
		}
		// A negated literal (¬p or ¬P(...)) contributes to the same atom's
		// entry indirectly only through its own un-negated sign assertions
		// elsewhere on the branch; a bare negated literal is not itself an
		// atom/predicate assignment target.
	}
	def := defaultLabel(logicName)
	for _, name := range knownAtoms {
		if _, ok := assignment[name]; !ok {
			assignment[name] = def
		}
	}
	return Model{Logic: logicName, Assignment: assignment}, nil
}

// ExtractModels builds one Model per open branch in result, defaulting
// unmentioned atoms drawn from the logic's initial signed formulas.
func ExtractModels(result *Result, initial []SignedFormula) ([]Model, error) {
	formulas := make([]Formula, len(initial))
	for i, sf := range initial {
		formulas[i] = sf.Formula
	}
	known := atomNames(formulas)
	models := make([]Model, 0, len(result.OpenBranches))
	for _, b := range result.OpenBranches {
		m, err := ExtractModel(b, result.Logic, known)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}
