package tableau

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bradleypallen/tableaux/internal/telemetry"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMaxBranches bounds the total number of branches the engine will
// ever create in one Build call, counting the root and every branch
// later replaced by its β-children, not only the branches that end up
// open or closed; exceeding it returns ErrResourceExhausted. Zero, the
// default, means unbounded.
func WithMaxBranches(n int) Option {
	return func(e *Engine) { e.maxBranches = n }
}

// WithObserver installs a diagnostic hook called once per rule
// application.
func WithObserver(obs Observer) Option {
	return func(e *Engine) { e.observer = obs }
}

// WithMonitor attaches a telemetry.Monitor so every rule application is
// logged under a single correlation id for this Build.
func WithMonitor(m *telemetry.Monitor) Option {
	return func(e *Engine) { e.monitor = m }
}

// WithParallelBeta enables exploring a β-rule's child branches
// concurrently, bounded to workers simultaneous goroutines, using
// golang.org/x/sync's errgroup and weighted semaphore. The engine is
// single-threaded by default (spec.md §5 "Concurrency model"); this is
// strictly opt-in.
func WithParallelBeta(workers int) Option {
	return func(e *Engine) {
		e.parallelBeta = true
		e.parallelWorkers = workers
	}
}

// BuildOption configures a single Build call.
type BuildOption func(*buildOptions)

type buildOptions struct {
	stopAtFirstOpen bool
}

// WithStopAtFirstOpen halts Build as soon as any branch is found open,
// instead of exploring every branch to completion (spec.md §4.5 "early
// termination").
func WithStopAtFirstOpen() BuildOption {
	return func(o *buildOptions) { o.stopAtFirstOpen = true }
}

// Engine is the C5 scheduler: it owns the registry for one logic and the
// resource/determinism knobs an EngineConfig would otherwise set. An
// Engine may be reused across Build calls. Build does not reset the
// initial formulas, and AddInitial appends to them, so each Build starts
// from every signed formula added so far.
type Engine struct {
	logicName string
	registry  *Registry

	maxBranches     int
	observer        Observer
	observerMu      sync.Mutex
	parallelBeta    bool
	parallelWorkers int
	monitor         *telemetry.Monitor

	initial []SignedFormula
}

// NewEngine constructs an Engine for the named, already-registered
// logic.
func NewEngine(logicName string, opts ...Option) (*Engine, error) {
	registry, ok := Lookup(logicName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogic, logicName)
	}
	e := &Engine{logicName: logicName, registry: registry}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// AddInitial appends signed formulas to the set Build will seed the root
// branch with.
func (e *Engine) AddInitial(sfs []SignedFormula) error {
	e.initial = append(e.initial, sfs...)
	return nil
}

// Initial returns the signed formulas previously passed to AddInitial,
// primarily so callers can hand them to ExtractModels for atom
// defaulting.
func (e *Engine) Initial() []SignedFormula {
	return append([]SignedFormula(nil), e.initial...)
}

// LogicName returns the name this engine was constructed with.
func (e *Engine) LogicName() string { return e.logicName }

// Result is everything a completed (or early-terminated) Build produced.
type Result struct {
	Logic          string
	Satisfiable    bool
	OpenBranches   []*Branch
	ClosedBranches []*Branch
	Statistics     Statistics
}

// errStoppedEarly unwinds a Build as soon as StopAtFirstOpen is
// satisfied; it is never returned to the caller of Build.
var errStoppedEarly = fmt.Errorf("tableau: stopped at first open branch")

// buildState is the mutable state one Build call accumulates, whether
// driven sequentially or with parallel β exploration.
type buildState struct {
	registry        *Registry
	maxBranches     int
	observer        Observer
	observerMu      *sync.Mutex
	monitor         *telemetry.Monitor
	correlationID   string
	stopAtFirstOpen bool

	nextBranchID atomic.Int64

	mu     sync.Mutex
	open   []*Branch
	closed []*Branch

	ruleApplications atomic.Int64
	maxBranchSize    atomic.Int64

	stoppedEarly atomic.Bool
}

// Build runs the tableau procedure to completion (or early termination),
// per spec.md §4.5's control loop.
func (e *Engine) Build(ctx context.Context, opts ...BuildOption) (*Result, error) {
	if len(e.initial) == 0 {
		return nil, ErrNoInitialFormulas
	}
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	// Every Build gets a correlation id, whether or not a telemetry.Monitor
	// is attached, so Statistics.CorrelationID and the Observer callback
	// can always tell concurrent Build calls apart. When a Monitor is
	// attached its id is reused, so log entries and these call sites agree.
	correlationID := uuid.NewString()
	if e.monitor != nil {
		correlationID = e.monitor.CorrelationID()
	}

	st := &buildState{
		registry:        e.registry,
		maxBranches:     e.maxBranches,
		observer:        e.observer,
		observerMu:      &e.observerMu,
		monitor:         e.monitor,
		correlationID:   correlationID,
		stopAtFirstOpen: bo.stopAtFirstOpen,
	}

	root := newBranch(st.nextBranchID.Inc() - 1)
	for _, sf := range e.initial {
		root.Add(sf)
	}
	st.recordSize(root)

	var buildErr error
	if e.parallelBeta {
		workers := e.parallelWorkers
		if workers <= 0 {
			workers = 4
		}
		sem := semaphore.NewWeighted(int64(workers))
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return st.drain(gctx, root, g, sem) })
		buildErr = g.Wait()
	} else {
		buildErr = st.drainSequential(ctx, root)
	}

	if buildErr != nil {
		if st.stoppedEarly.Load() {
			buildErr = nil
		} else {
			return nil, buildErr
		}
	}

	st.mu.Lock()
	open := append([]*Branch(nil), st.open...)
	closed := append([]*Branch(nil), st.closed...)
	st.mu.Unlock()

	// Post-hoc resort by id for determinism, regardless of goroutine
	// completion order (spec.md §4.5 "Determinism").
	sort.Slice(open, func(i, j int) bool { return open[i].ID() < open[j].ID() })
	sort.Slice(closed, func(i, j int) bool { return closed[i].ID() < closed[j].ID() })

	return &Result{
		Logic:          e.logicName,
		Satisfiable:    len(open) > 0,
		OpenBranches:   open,
		ClosedBranches: closed,
		Statistics: Statistics{
			CorrelationID:    st.correlationID,
			RuleApplications: int(st.ruleApplications.Load()),
			TotalBranches:    len(open) + len(closed),
			OpenBranches:     len(open),
			ClosedBranches:   len(closed),
			MaxBranchSize:    int(st.maxBranchSize.Load()),
		},
	}, nil
}

func (st *buildState) recordSize(b *Branch) {
	n := int64(len(b.SignedFormulas()))
	for {
		cur := st.maxBranchSize.Load()
		if n <= cur || st.maxBranchSize.CAS(cur, n) {
			return
		}
	}
}

func (st *buildState) notify(branchID, parentID int64, ruleName string, triggering SignedFormula, produced []SignedFormula) {
	if st.observer == nil {
		return
	}
	st.observerMu.Lock()
	defer st.observerMu.Unlock()
	st.observer(st.correlationID, branchID, parentID, ruleName, triggering, produced)
}

func (st *buildState) reserveBranch() (int64, error) {
	id := st.nextBranchID.Inc() - 1
	if st.maxBranches > 0 && id >= int64(st.maxBranches) {
		return 0, ErrResourceExhausted
	}
	return id, nil
}

// expandWithTelemetry calls rule.Expand, wrapping it in a
// telemetry.Monitor operation when one is attached; a nil monitor costs
// a single pointer check.
func (st *buildState) expandWithTelemetry(rule *Rule, sf SignedFormula, ctx ExpansionContext) (Expansion, error) {
	if st.monitor == nil {
		return rule.Expand(sf, ctx)
	}
	tracker := st.monitor.StartOperation("rule:" + rule.Name)
	exp, err := rule.Expand(sf, ctx)
	if err != nil {
		tracker.Cancel(err)
		return exp, err
	}
	tracker.Complete()
	return exp, nil
}

func parentOf(b *Branch) int64 {
	id, hasParent := b.ParentID()
	if !hasParent {
		return -1
	}
	return id
}

// drainSequential runs the single-threaded α/β loop over one branch and
// its descendants, never spawning goroutines — the engine's default
// mode.
func (st *buildState) drainSequential(ctx context.Context, b *Branch) error {
	for {
		select {
		case <-ctx.Done():
			return ErrCancelled
		default:
		}

		if b.IsClosed() {
			st.mu.Lock()
			st.closed = append(st.closed, b)
			st.mu.Unlock()
			return nil
		}

		sf, rule, ok := b.NextExpandable(st.registry)
		if !ok {
			st.mu.Lock()
			st.open = append(st.open, b)
			st.mu.Unlock()
			if st.stopAtFirstOpen {
				st.stoppedEarly.Store(true)
				return errStoppedEarly
			}
			return nil
		}

		exp, err := st.expandWithTelemetry(rule, sf, ExpansionContext{Domain: b.Domain(), Fresh: b.FreshConstant})
		if err != nil {
			return err
		}
		b.markProcessed(sf)
		st.ruleApplications.Inc()
		parentID := parentOf(b)

		if exp.IsLinear {
			var produced []SignedFormula
			for _, add := range exp.Branches[0] {
				b.Add(add)
				produced = append(produced, add)
			}
			st.recordSize(b)
			st.notify(b.ID(), parentID, rule.Name, sf, produced)
			if b.IsClosed() {
				st.mu.Lock()
				st.closed = append(st.closed, b)
				st.mu.Unlock()
				return nil
			}
			continue
		}

		var produced []SignedFormula
		children := make([]*Branch, 0, len(exp.Branches))
		for _, adds := range exp.Branches {
			childID, err := st.reserveBranch()
			if err != nil {
				return err
			}
			child := b.Clone(childID)
			for _, add := range adds {
				child.Add(add)
				produced = append(produced, add)
			}
			st.recordSize(child)
			children = append(children, child)
		}
		st.notify(b.ID(), parentID, rule.Name, sf, produced)

		for _, child := range children {
			if err := st.drainSequential(ctx, child); err != nil {
				return err
			}
			if st.stoppedEarly.Load() {
				return errStoppedEarly
			}
		}
		return nil
	}
}

// drain is drainSequential's parallel counterpart: α-steps stay on the
// calling goroutine, but a β-step's children are each dispatched through
// g.Go, bounded by sem, so at most sem's weight branches are explored
// concurrently at any time.
func (st *buildState) drain(ctx context.Context, b *Branch, g *errgroup.Group, sem *semaphore.Weighted) error {
	for {
		select {
		case <-ctx.Done():
			return ErrCancelled
		default:
		}

		if b.IsClosed() {
			st.mu.Lock()
			st.closed = append(st.closed, b)
			st.mu.Unlock()
			return nil
		}

		sf, rule, ok := b.NextExpandable(st.registry)
		if !ok {
			st.mu.Lock()
			st.open = append(st.open, b)
			st.mu.Unlock()
			if st.stopAtFirstOpen {
				st.stoppedEarly.Store(true)
				return errStoppedEarly
			}
			return nil
		}

		exp, err := st.expandWithTelemetry(rule, sf, ExpansionContext{Domain: b.Domain(), Fresh: b.FreshConstant})
		if err != nil {
			return err
		}
		b.markProcessed(sf)
		st.ruleApplications.Inc()
		parentID := parentOf(b)

		if exp.IsLinear {
			var produced []SignedFormula
			for _, add := range exp.Branches[0] {
				b.Add(add)
				produced = append(produced, add)
			}
			st.recordSize(b)
			st.notify(b.ID(), parentID, rule.Name, sf, produced)
			if b.IsClosed() {
				st.mu.Lock()
				st.closed = append(st.closed, b)
				st.mu.Unlock()
				return nil
			}
			continue
		}

		var produced []SignedFormula
		children := make([]*Branch, 0, len(exp.Branches))
		for _, adds := range exp.Branches {
			childID, err := st.reserveBranch()
			if err != nil {
				return err
			}
			child := b.Clone(childID)
			for _, add := range adds {
				child.Add(add)
				produced = append(produced, add)
			}
			st.recordSize(child)
			children = append(children, child)
		}
		st.notify(b.ID(), parentID, rule.Name, sf, produced)

		for _, child := range children {
			child := child
			if err := sem.Acquire(ctx, 1); err != nil {
				return multierr.Append(ErrCancelled, err)
			}
			g.Go(func() error {
				defer sem.Release(1)
				return st.drain(ctx, child, g, sem)
			})
		}
		return nil
	}
}
