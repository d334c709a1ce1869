package tableau

import (
	"hash/fnv"
	"sort"
)

// Formula is the immutable, hash-consable algebraic sum type of
// spec.md §3. Every variant is a value type so structural equality and
// hashing fall out of Go's built-in comparison where possible. Atom
// caches its hash at construction; the other variants compute Hash from
// their parts on each call. The branch literal index is keyed by
// formulaKey, not by Hash.
type Formula interface {
	// String renders the formula for diagnostics; not used for parsing.
	String() string

	// Equal reports structural equality with another formula.
	Equal(other Formula) bool

	// Hash returns a stable structural hash, consistent across a single
	// process run, satisfying Equal(a,b) => a.Hash() == b.Hash().
	Hash() uint64

	// isLiteral reports whether this formula is an atom, a predicate, or
	// the negation of either — the class the branch literal index keys
	// on (spec.md §3 "Branch").
	isLiteral() bool
}

func hashString(seed uint64, s string) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
	}
	h.Write(buf[:])
	h.Write([]byte(s))
	return h.Sum64()
}

// Atom is a propositional atom identified by name.
type Atom struct {
	Name string
	hash uint64
}

// NewAtom constructs an atom. Two atoms with the same name are
// structurally equal and hash identically.
func NewAtom(name string) Atom {
	return Atom{Name: name, hash: hashString(0xA70D, name)}
}

func (a Atom) String() string { return a.Name }

// Equal reports structural equality with another formula.
func (a Atom) Equal(other Formula) bool {
	o, ok := other.(Atom)
	return ok && o.Name == a.Name
}

// Hash returns the cached structural hash.
func (a Atom) Hash() uint64 { return a.hash }
func (a Atom) isLiteral() bool { return true }

// Predicate is an atomic first-order formula: a predicate symbol applied
// to argument terms.
type Predicate struct {
	Name string
	Args []Term
}

// NewPredicate constructs a ground or variable-containing predicate
// application.
func NewPredicate(name string, args ...Term) Predicate {
	return Predicate{Name: name, Args: append([]Term(nil), args...)}
}

func (p Predicate) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	s := p.Name + "("
	for i, a := range p.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// Equal reports structural equality with another formula.
func (p Predicate) Equal(other Formula) bool {
	o, ok := other.(Predicate)
	if !ok || o.Name != p.Name || len(o.Args) != len(p.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash over the predicate name and arguments.
func (p Predicate) Hash() uint64 {
	h := hashString(0x0FED, p.Name)
	for _, a := range p.Args {
		h = hashString(h, termKey(a))
	}
	return h
}
func (p Predicate) isLiteral() bool { return true }

// Negation is the logical negation of an operand formula.
type Negation struct {
	Operand Formula
}

// NewNegation constructs the negation of operand.
func NewNegation(operand Formula) Negation { return Negation{Operand: operand} }

func (n Negation) String() string { return "¬" + n.Operand.String() }

// Equal reports structural equality with another formula.
func (n Negation) Equal(other Formula) bool {
	o, ok := other.(Negation)
	return ok && n.Operand.Equal(o.Operand)
}

// Hash returns a structural hash derived from the operand's hash.
func (n Negation) Hash() uint64 { return hashString(0x4E6567, "") ^ (n.Operand.Hash() * 1099511628211) }

// isLiteral reports true iff the operand is an atom or predicate, so
// ¬¬p is not itself a literal (it still has a connective to expand).
func (n Negation) isLiteral() bool {
	switch n.Operand.(type) {
	case Atom, Predicate:
		return true
	default:
		return false
	}
}

// binary is the shared shape of the three binary connectives; it is not
// exported, each connective wraps it with its own type so type switches
// in the rule tables stay exhaustive and readable.
type binary struct {
	Left, Right Formula
}

func (b binary) equal(otherLeft, otherRight Formula) bool {
	return b.Left.Equal(otherLeft) && b.Right.Equal(otherRight)
}

func (b binary) hash(tag uint64) uint64 {
	h := hashString(tag, "")
	h = hashString(h, "") ^ (b.Left.Hash() * 1099511628211)
	h = h ^ (b.Right.Hash()*1099511628211 + 0x9E3779B97F4A7C15)
	return h
}

// Conjunction is the binary connective A ∧ B.
type Conjunction struct{ binary }

// NewConjunction constructs left ∧ right.
func NewConjunction(left, right Formula) Conjunction {
	return Conjunction{binary{Left: left, Right: right}}
}

func (c Conjunction) String() string { return "(" + c.Left.String() + " ∧ " + c.Right.String() + ")" }

// Equal reports structural equality with another formula.
func (c Conjunction) Equal(other Formula) bool {
	o, ok := other.(Conjunction)
	return ok && c.equal(o.Left, o.Right)
}

// Hash returns a structural hash over the two conjuncts.
func (c Conjunction) Hash() uint64   { return c.hash(0xC04A) }
func (c Conjunction) isLiteral() bool { return false }

// Disjunction is the binary connective A ∨ B.
type Disjunction struct{ binary }

// NewDisjunction constructs left ∨ right.
func NewDisjunction(left, right Formula) Disjunction {
	return Disjunction{binary{Left: left, Right: right}}
}

func (d Disjunction) String() string { return "(" + d.Left.String() + " ∨ " + d.Right.String() + ")" }

// Equal reports structural equality with another formula.
func (d Disjunction) Equal(other Formula) bool {
	o, ok := other.(Disjunction)
	return ok && d.equal(o.Left, o.Right)
}

// Hash returns a structural hash over the two disjuncts.
func (d Disjunction) Hash() uint64   { return d.hash(0xD15D) }
func (d Disjunction) isLiteral() bool { return false }

// Implication is the binary connective A → B.
type Implication struct{ binary }

// NewImplication constructs antecedent → consequent.
func NewImplication(antecedent, consequent Formula) Implication {
	return Implication{binary{Left: antecedent, Right: consequent}}
}

// Antecedent returns the left side of the implication.
func (i Implication) Antecedent() Formula { return i.Left }

// Consequent returns the right side of the implication.
func (i Implication) Consequent() Formula { return i.Right }

func (i Implication) String() string { return "(" + i.Left.String() + " → " + i.Right.String() + ")" }

// Equal reports structural equality with another formula.
func (i Implication) Equal(other Formula) bool {
	o, ok := other.(Implication)
	return ok && i.equal(o.Left, o.Right)
}

// Hash returns a structural hash over antecedent and consequent.
func (i Implication) Hash() uint64   { return i.hash(0x1312) }
func (i Implication) isLiteral() bool { return false }

// RestrictedExists is Ferguson's wKrQ restricted existential quantifier:
// [∃x guard(x)] body(x). It is optional per spec.md §3; the engine
// remains purely propositional if it is never constructed.
type RestrictedExists struct {
	Var   Variable
	Guard Formula
	Body  Formula
}

// NewRestrictedExists constructs [∃v guard] body.
func NewRestrictedExists(v Variable, guard, body Formula) RestrictedExists {
	return RestrictedExists{Var: v, Guard: guard, Body: body}
}

func (r RestrictedExists) String() string {
	return "[∃" + r.Var.Name + " " + r.Guard.String() + "] " + r.Body.String()
}

// Equal reports structural equality with another formula.
func (r RestrictedExists) Equal(other Formula) bool {
	o, ok := other.(RestrictedExists)
	return ok && r.Var.Equal(o.Var) && r.Guard.Equal(o.Guard) && r.Body.Equal(o.Body)
}

// Hash returns a structural hash over the bound variable, guard and body.
func (r RestrictedExists) Hash() uint64 {
	h := hashString(0xE715, r.Var.Name)
	h = h ^ (r.Guard.Hash() * 1099511628211)
	h = h ^ (r.Body.Hash()*1099511628211 + 0x9E3779B97F4A7C15)
	return h
}
func (r RestrictedExists) isLiteral() bool { return false }

// RestrictedForall is Ferguson's wKrQ restricted universal quantifier:
// [∀x guard(x)] body(x).
type RestrictedForall struct {
	Var   Variable
	Guard Formula
	Body  Formula
}

// NewRestrictedForall constructs [∀v guard] body.
func NewRestrictedForall(v Variable, guard, body Formula) RestrictedForall {
	return RestrictedForall{Var: v, Guard: guard, Body: body}
}

func (r RestrictedForall) String() string {
	return "[∀" + r.Var.Name + " " + r.Guard.String() + "] " + r.Body.String()
}

// Equal reports structural equality with another formula.
func (r RestrictedForall) Equal(other Formula) bool {
	o, ok := other.(RestrictedForall)
	return ok && r.Var.Equal(o.Var) && r.Guard.Equal(o.Guard) && r.Body.Equal(o.Body)
}

// Hash returns a structural hash over the bound variable, guard and body.
func (r RestrictedForall) Hash() uint64 {
	h := hashString(0xF0124C, r.Var.Name)
	h = h ^ (r.Guard.Hash() * 1099511628211)
	h = h ^ (r.Body.Hash()*1099511628211 + 0x9E3779B97F4A7C15)
	return h
}
func (r RestrictedForall) isLiteral() bool { return false }

// Substitute returns a new formula with every free occurrence of v
// replaced by term. A nested quantifier that rebinds v is left unchanged,
// since v is not free inside it. Bound variables are never renamed, so a
// variable occurring in term is not protected from capture by a nested
// quantifier that binds the same name.
func Substitute(f Formula, v Variable, term Term) Formula {
	switch ff := f.(type) {
	case Atom:
		return ff
	case Predicate:
		args := make([]Term, len(ff.Args))
		for i, a := range ff.Args {
			args[i] = substituteTerm(a, v.Name, term)
		}
		return Predicate{Name: ff.Name, Args: args}
	case Negation:
		return Negation{Operand: Substitute(ff.Operand, v, term)}
	case Conjunction:
		return Conjunction{binary{Substitute(ff.Left, v, term), Substitute(ff.Right, v, term)}}
	case Disjunction:
		return Disjunction{binary{Substitute(ff.Left, v, term), Substitute(ff.Right, v, term)}}
	case Implication:
		return Implication{binary{Substitute(ff.Left, v, term), Substitute(ff.Right, v, term)}}
	case RestrictedExists:
		if ff.Var.Equal(v) {
			return ff
		}
		return RestrictedExists{Var: ff.Var, Guard: Substitute(ff.Guard, v, term), Body: Substitute(ff.Body, v, term)}
	case RestrictedForall:
		if ff.Var.Equal(v) {
			return ff
		}
		return RestrictedForall{Var: ff.Var, Guard: Substitute(ff.Guard, v, term), Body: Substitute(ff.Body, v, term)}
	default:
		return f
	}
}

// formulaKey returns a canonical structural string for a formula, used
// as a map key by the branch literal index and the processed-set. Unlike
// Hash (a fixed-width value meant for fast comparison), this key is
// collision-free by construction, which matters because the processed-set
// and literal index are correctness-critical, not just a performance
// cache.
func formulaKey(f Formula) string {
	switch ff := f.(type) {
	case Atom:
		return "A:" + ff.Name
	case Predicate:
		k := "P:" + ff.Name + "("
		for i, a := range ff.Args {
			if i > 0 {
				k += ","
			}
			k += termKey(a)
		}
		return k + ")"
	case Negation:
		return "N:" + formulaKey(ff.Operand)
	case Conjunction:
		return "C:" + formulaKey(ff.Left) + "&" + formulaKey(ff.Right)
	case Disjunction:
		return "D:" + formulaKey(ff.Left) + "|" + formulaKey(ff.Right)
	case Implication:
		return "I:" + formulaKey(ff.Left) + "->" + formulaKey(ff.Right)
	case RestrictedExists:
		return "E:" + ff.Var.Name + ":" + formulaKey(ff.Guard) + ":" + formulaKey(ff.Body)
	case RestrictedForall:
		return "U:" + ff.Var.Name + ":" + formulaKey(ff.Guard) + ":" + formulaKey(ff.Body)
	default:
		return "?"
	}
}

// atomNames returns the sorted, de-duplicated set of atom names and
// zero-arity predicate names mentioned anywhere in the given formulas,
// used by model extractors to enumerate which symbols need a default
// assignment.
func atomNames(formulas []Formula) []string {
	seen := map[string]struct{}{}
	collectAtomNames(formulas, seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectAtomNames(formulas []Formula, seen map[string]struct{}) {
	for _, f := range formulas {
		switch ff := f.(type) {
		case Atom:
			seen[ff.Name] = struct{}{}
		case Predicate:
			if len(ff.Args) == 0 {
				seen[ff.Name] = struct{}{}
			}
		case Negation:
			collectAtomNames([]Formula{ff.Operand}, seen)
		case Conjunction:
			collectAtomNames([]Formula{ff.Left, ff.Right}, seen)
		case Disjunction:
			collectAtomNames([]Formula{ff.Left, ff.Right}, seen)
		case Implication:
			collectAtomNames([]Formula{ff.Left, ff.Right}, seen)
		case RestrictedExists:
			collectAtomNames([]Formula{ff.Guard, ff.Body}, seen)
		case RestrictedForall:
			collectAtomNames([]Formula{ff.Guard, ff.Body}, seen)
		}
	}
}
