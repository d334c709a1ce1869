package tableau

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/bradleypallen/tableaux/internal/telemetry"
)

func mustEngine(t *testing.T, logic string) *Engine {
	t.Helper()
	e, err := NewEngine(logic)
	if err != nil {
		t.Fatalf("NewEngine(%q) = %v", logic, err)
	}
	return e
}

func TestCPLTautologyRefutation(t *testing.T) {
	// F:(p -> p) should close on every branch: a formula is a tautology
	// iff its refutation is unsatisfiable.
	p := NewAtom("p")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLFalse, NewImplication(p, p))})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Satisfiable {
		t.Error("the refutation of a tautology should be unsatisfiable")
	}
}

func TestCPLDirectContradiction(t *testing.T) {
	p := NewAtom("p")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewConjunction(p, NewNegation(p)))})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Satisfiable {
		t.Error("T:(p ∧ ¬p) should be unsatisfiable")
	}
	if len(result.OpenBranches) != 0 {
		t.Errorf("expected zero open branches, got %d", len(result.OpenBranches))
	}
}

func TestCPLModusPonensRefutation(t *testing.T) {
	// T:(p->q), T:p, F:q — asserting the premises true and the
	// conclusion false should close every branch, confirming validity.
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{
		NewSignedFormula(CPLTrue, NewImplication(p, q)),
		NewSignedFormula(CPLTrue, p),
		NewSignedFormula(CPLFalse, q),
	})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Satisfiable {
		t.Error("modus ponens's refutation should be unsatisfiable")
	}
}

func TestCPLDisjunctionHasTwoModels(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	initial := []SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))}
	e.AddInitial(initial)

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.Satisfiable {
		t.Fatal("p ∨ q should be satisfiable")
	}
	if len(result.OpenBranches) != 2 {
		t.Errorf("expected 2 open branches (p, q), got %d", len(result.OpenBranches))
	}

	models, err := ExtractModels(result, e.Initial())
	if err != nil {
		t.Fatalf("ExtractModels: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	for _, m := range models {
		if m.Assignment["p"] != "true" && m.Assignment["q"] != "true" {
			t.Errorf("model %v satisfies neither disjunct", m.Assignment)
		}
	}
}

func TestWK3ConjunctionWithNegationIsUnsatisfiable(t *testing.T) {
	// Under weak Kleene, p ∧ ¬p is never T3: T gives F, F gives F, U
	// gives U — there is no assignment making it true.
	p := NewAtom("p")
	e := mustEngine(t, LogicWK3)
	e.AddInitial([]SignedFormula{NewSignedFormula(WK3True, NewConjunction(p, NewNegation(p)))})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Satisfiable {
		t.Error("T3:(p ∧ ¬p) should be unsatisfiable under weak Kleene semantics")
	}
}

func TestWK3ExcludedMiddleFailsClassicallyButHoldsAsUndefined(t *testing.T) {
	p := NewAtom("p")

	t.Run("F3 is unsatisfiable", func(t *testing.T) {
		e := mustEngine(t, LogicWK3)
		e.AddInitial([]SignedFormula{NewSignedFormula(WK3False, NewDisjunction(p, NewNegation(p)))})
		result, err := e.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if result.Satisfiable {
			t.Error("F3:(p ∨ ¬p) should be unsatisfiable — excluded middle is never false")
		}
	})

	t.Run("U is satisfiable with p undefined", func(t *testing.T) {
		e := mustEngine(t, LogicWK3)
		e.AddInitial([]SignedFormula{NewSignedFormula(WK3Undefined, NewDisjunction(p, NewNegation(p)))})
		result, err := e.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !result.Satisfiable {
			t.Error("U:(p ∨ ¬p) should be satisfiable when p is undefined")
		}
	})
}

func TestWKRQEpistemicCoexistence(t *testing.T) {
	// M:p and N:p together assert only epistemic possibility in both
	// directions, not classical commitment, so they must not close.
	p := NewAtom("p")
	e := mustEngine(t, LogicWKRQ)
	e.AddInitial([]SignedFormula{
		NewSignedFormula(WKRQMay, p),
		NewSignedFormula(WKRQNot, p),
	})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.Satisfiable {
		t.Error("M:p and N:p should coexist without closing the branch")
	}
}

func TestFDENeverCloses(t *testing.T) {
	p := NewAtom("p")
	e := mustEngine(t, LogicFDE)
	e.AddInitial([]SignedFormula{
		NewSignedFormula(FDETrue, p),
		NewSignedFormula(FDEFalse, p),
	})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.Satisfiable {
		t.Error("FDE asserts both T:p and F:p without closure — paraconsistent glut, not contradiction")
	}
}

func TestBuildRejectsEmptyInitial(t *testing.T) {
	e := mustEngine(t, LogicCPL)
	if _, err := e.Build(context.Background()); err != ErrNoInitialFormulas {
		t.Errorf("Build with no initial formulas = %v, want ErrNoInitialFormulas", err)
	}
}

func TestNewEngineRejectsUnknownLogic(t *testing.T) {
	if _, err := NewEngine("not-a-logic"); err == nil {
		t.Error("expected an error for an unregistered logic name")
	}
}

func TestStopAtFirstOpen(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})

	result, err := e.Build(context.Background(), WithStopAtFirstOpen())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.Satisfiable {
		t.Fatal("expected satisfiable result")
	}
	if len(result.OpenBranches)+len(result.ClosedBranches) > 2 {
		t.Errorf("stop-at-first-open should not explore more branches than necessary, got %d total",
			len(result.OpenBranches)+len(result.ClosedBranches))
	}
}

func TestMaxBranchesResourceExhaustion(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e, err := NewEngine(LogicCPL, WithMaxBranches(1))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})

	if _, err := e.Build(context.Background()); err != ErrResourceExhausted {
		t.Errorf("Build = %v, want ErrResourceExhausted", err)
	}
}

func TestBuildIsDeterministicAcrossRuns(t *testing.T) {
	p, q, r := NewAtom("p"), NewAtom("q"), NewAtom("r")
	build := func() *Result {
		e := mustEngine(t, LogicCPL)
		e.AddInitial([]SignedFormula{
			NewSignedFormula(CPLTrue, NewDisjunction(p, q)),
			NewSignedFormula(CPLTrue, NewDisjunction(NewNegation(p), r)),
		})
		result, err := e.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return result
	}

	a, b := build(), build()
	if a.Statistics.RuleApplications != b.Statistics.RuleApplications {
		t.Errorf("rule application counts differ across runs: %d vs %d",
			a.Statistics.RuleApplications, b.Statistics.RuleApplications)
	}
	if len(a.OpenBranches) != len(b.OpenBranches) {
		t.Errorf("open branch counts differ across runs: %d vs %d", len(a.OpenBranches), len(b.OpenBranches))
	}
}

func TestParallelBetaMatchesSequentialResult(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")

	sequential := mustEngine(t, LogicCPL)
	sequential.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})
	seqResult, err := sequential.Build(context.Background())
	if err != nil {
		t.Fatalf("sequential Build: %v", err)
	}

	parallel, err := NewEngine(LogicCPL, WithParallelBeta(2))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	parallel.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})
	parResult, err := parallel.Build(context.Background())
	if err != nil {
		t.Fatalf("parallel Build: %v", err)
	}

	if seqResult.Satisfiable != parResult.Satisfiable {
		t.Error("parallel and sequential builds disagree on satisfiability")
	}
	if len(seqResult.OpenBranches) != len(parResult.OpenBranches) {
		t.Errorf("open branch counts differ: sequential %d, parallel %d",
			len(seqResult.OpenBranches), len(parResult.OpenBranches))
	}
}

func TestRestrictedQuantifiers(t *testing.T) {
	x := NewVariable("x")
	a := NewConstant("a")
	person := func(t Term) Formula { return NewPredicate("Person", t) }
	happy := func(t Term) Formula { return NewPredicate("Happy", t) }

	t.Run("existential introduces a witness", func(t *testing.T) {
		e := mustEngine(t, LogicWKRQ)
		q := NewRestrictedExists(x, person(x), happy(x))
		e.AddInitial([]SignedFormula{NewSignedFormula(WKRQTrue, q)})

		result, err := e.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !result.Satisfiable {
			t.Fatal("[∃x Person(x)] Happy(x) should be satisfiable")
		}
	})

	t.Run("universal over a known constant case-splits", func(t *testing.T) {
		e := mustEngine(t, LogicWKRQ)
		q := NewRestrictedForall(x, person(x), happy(x))
		e.AddInitial([]SignedFormula{
			NewSignedFormula(WKRQTrue, person(a)),
			NewSignedFormula(WKRQTrue, q),
		})

		result, err := e.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !result.Satisfiable {
			t.Fatal("expected at least one open branch (¬Person(a) or Happy(a))")
		}
	})
}

func TestBuildAlwaysAssignsACorrelationID(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Statistics.CorrelationID == "" {
		t.Error("Statistics.CorrelationID should be set even without an attached Monitor")
	}
}

func TestObserverAndStatisticsShareTheMonitorsCorrelationID(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	monitor := telemetry.NewMonitor(zap.NewNop())

	var observedIDs []string
	observer := func(correlationID string, branchID, parentBranchID int64, ruleName string, triggering SignedFormula, produced []SignedFormula) {
		observedIDs = append(observedIDs, correlationID)
	}

	e, err := NewEngine(LogicCPL, WithMonitor(monitor), WithObserver(observer))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})

	result, err := e.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Statistics.CorrelationID != monitor.CorrelationID() {
		t.Errorf("Statistics.CorrelationID = %q, want the attached monitor's id %q",
			result.Statistics.CorrelationID, monitor.CorrelationID())
	}
	if len(observedIDs) == 0 {
		t.Fatal("expected the observer to be called at least once")
	}
	for _, id := range observedIDs {
		if id != monitor.CorrelationID() {
			t.Errorf("observer correlationID = %q, want %q", id, monitor.CorrelationID())
		}
	}
}

func TestBuildRespectsCancellation(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, NewDisjunction(p, q))})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Build(ctx); err != ErrCancelled {
		t.Errorf("Build with a pre-cancelled context = %v, want ErrCancelled", err)
	}
}
