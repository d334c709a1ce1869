package tableau

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBranchAddDetectsContradiction(t *testing.T) {
	b := newBranch(0)
	p := NewAtom("p")

	if closed := b.Add(NewSignedFormula(CPLTrue, p)); closed {
		t.Fatal("a single assertion should not close the branch")
	}
	if closed := b.Add(NewSignedFormula(CPLFalse, p)); !closed {
		t.Fatal("T:p followed by F:p should close the branch")
	}
	if !b.IsClosed() {
		t.Fatal("branch should report closed")
	}
	w, ok := b.Witness()
	if !ok {
		t.Fatal("closed branch should have a witness")
	}
	if !w.Second.Formula.Equal(p) {
		t.Errorf("witness formula = %s, want p", w.Second.Formula)
	}
}

func TestBranchAddIsNoOpOnceClosed(t *testing.T) {
	b := newBranch(0)
	p, q := NewAtom("p"), NewAtom("q")
	b.Add(NewSignedFormula(CPLTrue, p))
	b.Add(NewSignedFormula(CPLFalse, p))

	before := len(b.SignedFormulas())
	if closed := b.Add(NewSignedFormula(CPLTrue, q)); closed {
		t.Error("Add on a closed branch should return false")
	}
	if len(b.SignedFormulas()) != before {
		t.Error("Add on a closed branch should not append")
	}
}

func TestBranchDomainGrowth(t *testing.T) {
	b := newBranch(0)
	c := NewConstant("a")
	pred := NewPredicate("P", c)

	b.Add(NewSignedFormula(CPLTrue, pred))
	domain := b.Domain()
	if len(domain) != 1 || !domain[0].Equal(c) {
		t.Errorf("domain = %v, want [a]", domain)
	}
}

func TestBranchCloneIsIndependent(t *testing.T) {
	parent := newBranch(0)
	parent.Add(NewSignedFormula(CPLTrue, NewAtom("p")))

	child := parent.Clone(1)
	child.Add(NewSignedFormula(CPLTrue, NewAtom("q")))

	if len(parent.SignedFormulas()) != 1 {
		t.Error("adding to the child must not affect the parent")
	}
	if len(child.SignedFormulas()) != 2 {
		t.Error("child should have both the inherited and its own formula")
	}
	parentID, hasParent := child.ParentID()
	if !hasParent || parentID != 0 {
		t.Errorf("child.ParentID() = (%d, %v), want (0, true)", parentID, hasParent)
	}
}

func TestBranchCloneDomainSnapshotIsIndependent(t *testing.T) {
	parent := newBranch(0)
	parent.Add(NewSignedFormula(CPLTrue, NewPredicate("P", NewConstant("a"))))
	parentSnapshot := parent.Domain()

	child := parent.Clone(1)
	child.Add(NewSignedFormula(CPLTrue, NewPredicate("P", NewConstant("b"))))

	if diff := cmp.Diff(parentSnapshot, parent.Domain()); diff != "" {
		t.Errorf("parent domain changed after cloning (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(parentSnapshot, child.Domain()); diff == "" {
		t.Error("child domain should diverge from the parent's snapshot after an independent addition")
	}
}

func TestBranchFreshConstantIsUnique(t *testing.T) {
	b := newBranch(3)
	a := b.FreshConstant()
	c := b.FreshConstant()
	if a.Equal(c) {
		t.Error("successive FreshConstant calls must not collide")
	}
}

func TestBranchNextExpandablePicksLowestPriority(t *testing.T) {
	b := newBranch(0)
	p, q := NewAtom("p"), NewAtom("q")
	b.Add(NewSignedFormula(CPLTrue, NewDisjunction(p, q))) // beta, priority 3
	b.Add(NewSignedFormula(CPLTrue, NewConjunction(p, q))) // alpha, priority 1

	registry := newCPLRegistry()
	sf, rule, ok := b.NextExpandable(registry)
	if !ok {
		t.Fatal("expected an expandable signed formula")
	}
	if rule.Priority != PriorityAlpha {
		t.Errorf("selected rule priority = %d, want %d (alpha beats beta)", rule.Priority, PriorityAlpha)
	}
	if _, isConj := sf.Formula.(Conjunction); !isConj {
		t.Errorf("selected formula = %s, want the conjunction", sf)
	}
}
