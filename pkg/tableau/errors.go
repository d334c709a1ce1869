package tableau

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// The error taxonomy mirrors spec.md §7: a small, closed set of sentinel
// errors, split by its recovery policy. ResourceExhausted and Cancelled
// are operational outcomes surfaced with partial results, returned bare
// so errors.Is comparisons stay cheap and direct. NoApplicableRule,
// SubstitutionCapture, and ModelExtractionFromClosedBranch are
// programming errors per that same policy — they should never happen
// given a well-formed registry and caller, so each is wrapped with
// github.com/pkg/errors to carry a stack trace at the point it fired.
var (
	// ErrNoInitialFormulas is returned by Build when called with an
	// empty list of initial signed formulas.
	ErrNoInitialFormulas = stderrors.New("tableau: build called with no initial formulas")

	// ErrUnknownLogic is returned by NewEngine when constructed with a
	// logic name that has not been registered.
	ErrUnknownLogic = stderrors.New("tableau: unknown logic")

	// ErrNoApplicableRule indicates the engine selected a signed formula
	// for which the registry reports an applicable rule but RuleFor then
	// returns none — an engine-logic bug. It is wrapped with a stack
	// trace via newNoApplicableRuleError.
	ErrNoApplicableRule = stderrors.New("tableau: no applicable rule for selected signed formula")

	// ErrResourceExhausted is returned when the number of branches created
	// in one Build call exceeds the configured max_branches bound. The
	// count includes branches already replaced by their β-children; the
	// number of branches live at one time is not counted separately.
	ErrResourceExhausted = stderrors.New("tableau: branch count exceeded max_branches")

	// ErrCancelled is returned when the caller's context is cancelled
	// between rule applications.
	ErrCancelled = stderrors.New("tableau: build cancelled")

	// ErrModelExtractionFromClosedBranch is returned by model extraction
	// when asked to build a model from a closed branch. It is wrapped with
	// a stack trace via newModelExtractionError.
	ErrModelExtractionFromClosedBranch = stderrors.New("tableau: cannot extract a model from a closed branch")

	// ErrSubstitutionCapture is reserved for quantifier rules that cannot
	// avoid variable capture; unreachable given the engine's fresh-name
	// discipline, but kept as a named, checkable error per spec.md §7.
	ErrSubstitutionCapture = stderrors.New("tableau: substitution would capture a variable")
)

// newNoApplicableRuleError wraps ErrNoApplicableRule with the offending
// signed formula and a stack trace.
func newNoApplicableRuleError(sf SignedFormula) error {
	return errors.Wrapf(ErrNoApplicableRule, "signed formula %s", sf.String())
}

// newSubstitutionCaptureError wraps ErrSubstitutionCapture with context.
func newSubstitutionCaptureError(v Variable, term Term) error {
	return errors.Wrapf(ErrSubstitutionCapture, "substituting %s for %s", term.String(), v.Name)
}

// newModelExtractionError wraps ErrModelExtractionFromClosedBranch with
// the offending branch's id and a stack trace.
func newModelExtractionError(branchID int64) error {
	return errors.Wrapf(ErrModelExtractionFromClosedBranch, "branch %d is closed", branchID)
}
