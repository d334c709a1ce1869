package tableau

import "go.uber.org/atomic"

// ClosureWitness records the pair of mutually contradicting signed
// formulas that closed a branch, preserved for any downstream consumer
// (step log, test assertions) per spec.md §4.4 "Closure semantics".
type ClosureWitness struct {
	First, Second SignedFormula
}

// literalEntry is one asserted sign for a literal formula, kept alongside
// the signed formula so a contradiction witness can be reported exactly.
type literalEntry struct {
	sf SignedFormula
}

// Branch is an ordered multiset of signed formulas together with the
// incremental bookkeeping the engine needs: a processed-set, a literal
// index for O(1) amortized closure detection, a closure flag/witness, a
// per-branch constant domain, and a branch-scoped fresh-constant counter
// (spec.md §3 "Branch", §4.4).
type Branch struct {
	id       int64
	parentID int64
	hasParent bool

	signedFormulas []SignedFormula

	// processedAt maps a signed-formula key to the domain generation at
	// the time it was marked processed. A universal-quantifier signed
	// formula is treated as unprocessed again if the domain has grown
	// since (spec.md §4.3/§9 "Universal quantifier fairness").
	processedAt map[signedFormulaKey]int

	literalIndex map[string][]literalEntry

	closed  bool
	witness *ClosureWitness

	domain          []Term
	domainSeen      map[string]struct{}
	domainGeneration int

	skolemCounter *atomic.Int64
}

// newBranch constructs an empty branch with the given id and no parent.
func newBranch(id int64) *Branch {
	return &Branch{
		id:            id,
		hasParent:     false,
		processedAt:   make(map[signedFormulaKey]int),
		literalIndex:  make(map[string][]literalEntry),
		domainSeen:    make(map[string]struct{}),
		skolemCounter: atomic.NewInt64(0),
	}
}

// ID returns this branch's unique, monotonically assigned identifier.
func (b *Branch) ID() int64 { return b.id }

// ParentID returns the id of the branch this one was cloned from, and
// whether it has a parent at all (the root branch does not).
func (b *Branch) ParentID() (int64, bool) { return b.parentID, b.hasParent }

// SignedFormulas returns the branch's signed-formula log in insertion
// order. The returned slice must not be mutated by the caller.
func (b *Branch) SignedFormulas() []SignedFormula { return b.signedFormulas }

// IsClosed reports whether the branch is closed. O(1).
func (b *Branch) IsClosed() bool { return b.closed }

// Witness returns the closure witness pair, or (ClosureWitness{}, false)
// if the branch is open.
func (b *Branch) Witness() (ClosureWitness, bool) {
	if b.witness == nil {
		return ClosureWitness{}, false
	}
	return *b.witness, true
}

// Domain returns the branch's current constant domain in the order
// constants were first introduced.
func (b *Branch) Domain() []Term { return append([]Term(nil), b.domain...) }

// Add appends sf to the branch, updating the literal index and checking
// for contradiction in the same step. It is a no-op (and returns false)
// if the branch is already closed — "once closed, a branch receives no
// further additions" (spec.md §3). It returns true if this addition
// closed the branch.
func (b *Branch) Add(sf SignedFormula) bool {
	if b.closed {
		return false
	}

	if sf.Formula.isLiteral() {
		key := formulaKey(sf.Formula)
		for _, existing := range b.literalIndex[key] {
			if sf.Sign.Contradicts(existing.sf.Sign) {
				b.closed = true
				b.witness = &ClosureWitness{First: existing.sf, Second: sf}
				b.signedFormulas = append(b.signedFormulas, sf)
				b.literalIndex[key] = append(b.literalIndex[key], literalEntry{sf: sf})
				return true
			}
		}
		b.literalIndex[key] = append(b.literalIndex[key], literalEntry{sf: sf})
	}

	b.signedFormulas = append(b.signedFormulas, sf)
	b.growDomain(sf.Formula)
	return false
}

// growDomain scans a formula for constants and adds any not already in
// the branch's domain, bumping the domain generation on growth so
// universal-quantifier rules know to reactivate.
func (b *Branch) growDomain(f Formula) {
	before := len(b.domain)
	collectConstants(f, b.domainSeen, &b.domain)
	if len(b.domain) > before {
		b.domainGeneration++
	}
}

func collectConstants(f Formula, seen map[string]struct{}, domain *[]Term) {
	var walkTerm func(t Term)
	walkTerm = func(t Term) {
		switch v := t.(type) {
		case Constant:
			if _, ok := seen[v.Name]; !ok {
				seen[v.Name] = struct{}{}
				*domain = append(*domain, v)
			}
		case Function:
			for _, a := range v.Args {
				walkTerm(a)
			}
		}
	}
	switch ff := f.(type) {
	case Predicate:
		for _, a := range ff.Args {
			walkTerm(a)
		}
	case Negation:
		collectConstants(ff.Operand, seen, domain)
	case Conjunction:
		collectConstants(ff.Left, seen, domain)
		collectConstants(ff.Right, seen, domain)
	case Disjunction:
		collectConstants(ff.Left, seen, domain)
		collectConstants(ff.Right, seen, domain)
	case Implication:
		collectConstants(ff.Left, seen, domain)
		collectConstants(ff.Right, seen, domain)
	case RestrictedExists:
		collectConstants(ff.Guard, seen, domain)
		collectConstants(ff.Body, seen, domain)
	case RestrictedForall:
		collectConstants(ff.Guard, seen, domain)
		collectConstants(ff.Body, seen, domain)
	}
}

// FreshConstant mints a constant not yet used on this branch, via the
// branch-scoped Skolem/witness counter (spec.md §4.3 "branch-scoped
// counter"). Freshness is with respect to names generated by this call;
// the generated prefix is chosen so it cannot collide with a caller's
// own constant names in the scenarios this engine targets.
func (b *Branch) FreshConstant() Constant {
	n := b.skolemCounter.Inc()
	return Constant{Name: skolemName(b.id, n)}
}

func skolemName(branchID, n int64) string {
	// Deterministic, allocation-light formatting without fmt, since this
	// runs on every existential-witness introduction.
	return "_w" + itoa(branchID) + "_" + itoa(n)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// isProcessed reports whether sf has already been expanded on this
// branch and should not fire again — except that a universal-quantifier
// signed formula is treated as not-yet-processed if the domain has grown
// since it was last marked processed.
func (b *Branch) isProcessed(sf SignedFormula) bool {
	gen, ok := b.processedAt[sf.key()]
	if !ok {
		return false
	}
	if isUniversalQuantifier(sf.Formula) && b.domainGeneration > gen {
		return false
	}
	return true
}

// markProcessed records sf as processed at the branch's current domain
// generation.
func (b *Branch) markProcessed(sf SignedFormula) {
	b.processedAt[sf.key()] = b.domainGeneration
}

func isUniversalQuantifier(f Formula) bool {
	_, ok := f.(RestrictedForall)
	return ok
}

// NextExpandable returns the unprocessed signed formula of minimum rule
// priority (ties broken by insertion order) together with the rule to
// apply, or ok == false if no unprocessed signed formula has an
// applicable rule (spec.md §4.5 step 2b).
func (b *Branch) NextExpandable(registry *Registry) (sf SignedFormula, rule *Rule, ok bool) {
	bestPriority := -1
	var bestSF SignedFormula
	var bestRule *Rule
	found := false

	for _, candidate := range b.signedFormulas {
		if b.isProcessed(candidate) {
			continue
		}
		r, applicable := registry.RuleFor(candidate)
		if !applicable {
			continue
		}
		if !found || r.Priority < bestPriority {
			found = true
			bestPriority = r.Priority
			bestSF = candidate
			bestRule = r
		}
	}

	return bestSF, bestRule, found
}

// HasExpandable reports whether NextExpandable would succeed.
func (b *Branch) HasExpandable(registry *Registry) bool {
	_, _, ok := b.NextExpandable(registry)
	return ok
}

// Clone produces a child branch with the given fresh id, inheriting all
// signed formulas, the literal index, the processed-set, and the
// constant domain. The literal index and processed-set are deep-copied
// so the child cannot alias the parent's mutable state (spec.md §4.4
// "the child must not alias the parent's mutable state").
func (b *Branch) Clone(newID int64) *Branch {
	child := &Branch{
		id:               newID,
		parentID:         b.id,
		hasParent:        true,
		signedFormulas:   append([]SignedFormula(nil), b.signedFormulas...),
		processedAt:      make(map[signedFormulaKey]int, len(b.processedAt)),
		literalIndex:     make(map[string][]literalEntry, len(b.literalIndex)),
		domain:           append([]Term(nil), b.domain...),
		domainSeen:       make(map[string]struct{}, len(b.domainSeen)),
		domainGeneration: b.domainGeneration,
		skolemCounter:    atomic.NewInt64(b.skolemCounter.Load()),
	}
	for k, v := range b.processedAt {
		child.processedAt[k] = v
	}
	for k, v := range b.literalIndex {
		child.literalIndex[k] = append([]literalEntry(nil), v...)
	}
	for k := range b.domainSeen {
		child.domainSeen[k] = struct{}{}
	}
	if b.closed {
		child.closed = true
		w := *b.witness
		child.witness = &w
	}
	return child
}
