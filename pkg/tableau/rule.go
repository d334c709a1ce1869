package tableau

// Rule priority classes, fixed by spec.md §4.3.
const (
	// PrioritySimplify is for immediate simplifications, e.g. double
	// negation elimination.
	PrioritySimplify = 0
	// PriorityAlpha is for linear (non-branching) expansions.
	PriorityAlpha = 1
	// PriorityNegation is for negation/duality rules.
	PriorityNegation = 2
	// PriorityBeta is for branching expansions.
	PriorityBeta = 3
	// PriorityQuantifier and above are reserved for quantifier and other
	// expensive rules; additional reserved tiers may use any value >= 4.
	PriorityQuantifier = 4
)

// Expansion is the output of applying a rule to a signed formula. For an
// α-rule (IsLinear == true) Branches holds exactly one list, all of whose
// contents are appended to the triggering branch. For a β-rule Branches
// holds k >= 2 lists; the engine replaces the triggering branch with k
// children, each inheriting the parent's signed formulas plus one list.
type Expansion struct {
	IsLinear bool
	Branches [][]SignedFormula
}

// linear is a convenience constructor for an α-rule's Expansion.
func linear(sfs ...SignedFormula) Expansion {
	return Expansion{IsLinear: true, Branches: [][]SignedFormula{sfs}}
}

// branching is a convenience constructor for a β-rule's Expansion.
func branching(branches ...[]SignedFormula) Expansion {
	return Expansion{IsLinear: false, Branches: branches}
}

// ExpansionContext gives a rule's Expand function read access to the
// branch-scoped state it may need: the current constant domain (for
// universal-quantifier case-splitting) and a fresh-constant generator
// (for existential witness introduction). Plain propositional rules
// ignore it entirely.
type ExpansionContext struct {
	// Domain is the branch's constant domain at the time of expansion.
	Domain []Term

	// Fresh returns a constant not yet used anywhere on this branch,
	// backed by the branch's Skolem/witness counter (spec.md §4.3/§9).
	Fresh func() Constant
}

// Rule is a value, not a stateful object: an applicability predicate and
// an expansion function, plus a name and priority for diagnostics and
// scheduling (spec.md §4.3 "A rule is a value, not a function with side
// effects").
type Rule struct {
	// Name identifies the rule for logging and step-tracking.
	Name string

	// Priority determines scheduling order; lower fires first.
	Priority int

	// Applies reports whether this rule can fire on sf.
	Applies func(sf SignedFormula) bool

	// Expand produces the rule's Expansion for sf, given branch-scoped
	// context. Only quantifier rules use ctx; everything else ignores it.
	Expand func(sf SignedFormula, ctx ExpansionContext) (Expansion, error)
}

// Registry holds one logic's complete rule set plus its sign vocabulary.
// Rules are tried in registration order at each priority tier, which
// gives the deterministic tie-break spec.md §4.3 requires ("the registry
// MUST return a deterministic choice (e.g., registration order)").
type Registry struct {
	LogicName string
	Signs     []Sign
	rules     []Rule
}

// NewRegistry creates an empty registry for the named logic with the
// given sign vocabulary (used for documentation/introspection only — the
// engine dispatches purely through Sign.Contradicts and RuleFor).
func NewRegistry(logicName string, signs []Sign) *Registry {
	return &Registry{LogicName: logicName, Signs: signs}
}

// AddRule registers a rule. Rules are matched in the order they are
// added; at equal priority, the earliest-added matching rule wins.
func (r *Registry) AddRule(rule Rule) {
	r.rules = append(r.rules, rule)
}

// RuleFor returns the lowest-priority rule applicable to sf, tie-broken
// by registration order, or (nil, false) if no rule applies.
func (r *Registry) RuleFor(sf SignedFormula) (*Rule, bool) {
	bestIdx := -1
	var best *Rule
	for i := range r.rules {
		rule := &r.rules[i]
		if !rule.Applies(sf) {
			continue
		}
		if best == nil || rule.Priority < best.Priority {
			best = rule
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, false
	}
	return best, true
}

// HasApplicableRule reports whether any registered rule applies to sf.
func (r *Registry) HasApplicableRule(sf SignedFormula) bool {
	_, ok := r.RuleFor(sf)
	return ok
}
