package tableau

// Sign is implemented by each logic's small sign enumeration. The engine
// never inspects sign identity directly (spec.md §4.2 "Design decision");
// it only ever calls Contradicts and Label through this interface, so
// adding a new logic is purely a matter of registering a new Sign type,
// its Contradicts relation, and a rule set — see Register.
type Sign interface {
	// String returns the sign's short display form (e.g. "T", "F3", "M").
	String() string

	// Contradicts reports whether this sign and other jointly close a
	// branch when asserted of the same formula. The relation must be
	// symmetric and never hold of a sign against itself (reflexive-free).
	Contradicts(other Sign) bool

	// Label returns the logic-specific name used by model extraction
	// (e.g. "true", "false", "undefined", "unknown").
	Label() string
}

// CPLSign is the two-valued classical sign system {T, F}.
type CPLSign int

const (
	// CPLTrue asserts the formula is true.
	CPLTrue CPLSign = iota
	// CPLFalse asserts the formula is false.
	CPLFalse
)

func (s CPLSign) String() string {
	if s == CPLTrue {
		return "T"
	}
	return "F"
}

// Contradicts implements T-contradicts-F and nothing else.
func (s CPLSign) Contradicts(other Sign) bool {
	o, ok := other.(CPLSign)
	return ok && o != s
}

// Label returns "true" or "false".
func (s CPLSign) Label() string {
	if s == CPLTrue {
		return "true"
	}
	return "false"
}

// WK3Sign is the three-valued weak-Kleene sign system {T3, F3, U}.
type WK3Sign int

const (
	// WK3True asserts the formula is definitely true.
	WK3True WK3Sign = iota
	// WK3False asserts the formula is definitely false.
	WK3False
	// WK3Undefined asserts the formula is undefined.
	WK3Undefined
)

func (s WK3Sign) String() string {
	switch s {
	case WK3True:
		return "T3"
	case WK3False:
		return "F3"
	default:
		return "U"
	}
}

// Contradicts implements T3-contradicts-F3; U contradicts nothing.
func (s WK3Sign) Contradicts(other Sign) bool {
	o, ok := other.(WK3Sign)
	if !ok {
		return false
	}
	if s == WK3Undefined || o == WK3Undefined {
		return false
	}
	return o != s
}

// Label returns "true", "false", or "undefined".
func (s WK3Sign) Label() string {
	switch s {
	case WK3True:
		return "true"
	case WK3False:
		return "false"
	default:
		return "undefined"
	}
}

// WKRQSign is Ferguson's four-signed epistemic sign system {T, F, M, N}.
// T and F carry the classical commitment; M ("may be true") and N ("may
// be false") express epistemic possibility without classical commitment.
type WKRQSign int

const (
	// WKRQTrue asserts the formula is true.
	WKRQTrue WKRQSign = iota
	// WKRQFalse asserts the formula is false.
	WKRQFalse
	// WKRQMay asserts the formula may be true (epistemic possibility).
	WKRQMay
	// WKRQNot asserts the formula may be false (epistemic possibility).
	WKRQNot
)

func (s WKRQSign) String() string {
	switch s {
	case WKRQTrue:
		return "T"
	case WKRQFalse:
		return "F"
	case WKRQMay:
		return "M"
	default:
		return "N"
	}
}

// Contradicts implements only T-contradicts-F; M and N are
// pairwise non-contradictory with all four signs, including themselves.
func (s WKRQSign) Contradicts(other Sign) bool {
	o, ok := other.(WKRQSign)
	if !ok {
		return false
	}
	return (s == WKRQTrue && o == WKRQFalse) || (s == WKRQFalse && o == WKRQTrue)
}

// Label returns "true", "false", or "unknown" for M/N.
func (s WKRQSign) Label() string {
	switch s {
	case WKRQTrue:
		return "true"
	case WKRQFalse:
		return "false"
	default:
		return "unknown"
	}
}

// FDESign is the four-valued paraconsistent First-Degree Entailment sign
// system {T, F, B, N}. The "Open question — FDE closure" is resolved here
// as never-closing: Contradicts always returns false, so an FDE branch
// only ever terminates by running out of expandable formulas, never by
// contradiction. See DESIGN.md for the rationale.
type FDESign int

const (
	// FDETrue asserts the formula is (at least) true.
	FDETrue FDESign = iota
	// FDEFalse asserts the formula is (at least) false.
	FDEFalse
	// FDEBoth asserts the formula is both true and false (paraconsistent glut).
	FDEBoth
	// FDENeither asserts the formula is neither true nor false (gap).
	FDENeither
)

func (s FDESign) String() string {
	switch s {
	case FDETrue:
		return "T"
	case FDEFalse:
		return "F"
	case FDEBoth:
		return "B"
	default:
		return "N"
	}
}

// Contradicts always returns false: FDE is paraconsistent and no pair of
// signs alone closes a branch (spec.md §3 "FDE (optional)").
func (s FDESign) Contradicts(other Sign) bool { return false }

// Label returns "true", "false", "both", or "neither".
func (s FDESign) Label() string {
	switch s {
	case FDETrue:
		return "true"
	case FDEFalse:
		return "false"
	case FDEBoth:
		return "both"
	default:
		return "neither"
	}
}

// SignedFormula pairs a sign with the formula it is asserted of. Two
// signed formulas contradict iff their formulas are equal and their
// signs contradict (spec.md §3).
type SignedFormula struct {
	Sign    Sign
	Formula Formula
}

// NewSignedFormula constructs a signed formula.
func NewSignedFormula(sign Sign, formula Formula) SignedFormula {
	return SignedFormula{Sign: sign, Formula: formula}
}

func (sf SignedFormula) String() string {
	return sf.Sign.String() + ":" + sf.Formula.String()
}

// Equal reports whether two signed formulas carry the same sign value
// and structurally equal formulas. It is not the contradiction relation.
func (sf SignedFormula) Equal(other SignedFormula) bool {
	return sf.Sign == other.Sign && sf.Formula.Equal(other.Formula)
}

// Contradicts reports whether sf and other contradict: same formula,
// contradicting signs.
func (sf SignedFormula) Contradicts(other SignedFormula) bool {
	return sf.Formula.Equal(other.Formula) && sf.Sign.Contradicts(other.Sign)
}

// key returns a stable map key for this signed formula, used by the
// branch processed-set.
func (sf SignedFormula) key() signedFormulaKey {
	return signedFormulaKey{signTypeTag(sf.Sign), formulaTag(sf.Sign), formulaKey(sf.Formula)}
}

type signedFormulaKey struct {
	signType string
	signVal  int
	formKey  string
}

func signTypeTag(s Sign) string {
	switch s.(type) {
	case CPLSign:
		return "cpl"
	case WK3Sign:
		return "wk3"
	case WKRQSign:
		return "wkrq"
	case FDESign:
		return "fde"
	default:
		return "?"
	}
}

func formulaTag(s Sign) int {
	switch v := s.(type) {
	case CPLSign:
		return int(v)
	case WK3Sign:
		return int(v)
	case WKRQSign:
		return int(v)
	case FDESign:
		return int(v)
	default:
		return -1
	}
}
