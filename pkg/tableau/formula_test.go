package tableau

import "testing"

func TestFormulaEquality(t *testing.T) {
	t.Run("atoms equal by name", func(t *testing.T) {
		if !NewAtom("p").Equal(NewAtom("p")) {
			t.Error("atoms with the same name should be equal")
		}
		if NewAtom("p").Equal(NewAtom("q")) {
			t.Error("atoms with different names should not be equal")
		}
	})

	t.Run("negation is literal only over atoms and predicates", func(t *testing.T) {
		p := NewAtom("p")
		if !NewNegation(p).isLiteral() {
			t.Error("¬p should be a literal")
		}
		if NewNegation(NewNegation(p)).isLiteral() {
			t.Error("¬¬p should not be a literal")
		}
	})

	t.Run("conjunction equality recurses structurally", func(t *testing.T) {
		a := NewConjunction(NewAtom("p"), NewAtom("q"))
		b := NewConjunction(NewAtom("p"), NewAtom("q"))
		c := NewConjunction(NewAtom("q"), NewAtom("p"))
		if !a.Equal(b) {
			t.Error("structurally identical conjunctions should be equal")
		}
		if a.Equal(c) {
			t.Error("conjunction is not commutative for Equal")
		}
	})

	t.Run("hash is consistent with equality", func(t *testing.T) {
		a := NewImplication(NewAtom("p"), NewAtom("q"))
		b := NewImplication(NewAtom("p"), NewAtom("q"))
		if a.Hash() != b.Hash() {
			t.Error("equal formulas must hash equal")
		}
	})
}

func TestSubstitute(t *testing.T) {
	x := NewVariable("x")
	c := NewConstant("c")

	t.Run("substitutes into predicate arguments", func(t *testing.T) {
		pred := NewPredicate("P", x)
		got := Substitute(pred, x, c)
		want := NewPredicate("P", c)
		if !got.Equal(want) {
			t.Errorf("Substitute(%s, x, c) = %s, want %s", pred, got, want)
		}
	})

	t.Run("does not substitute under a shadowing quantifier", func(t *testing.T) {
		guard := NewPredicate("Guard", x)
		body := NewPredicate("Body", x)
		q := NewRestrictedExists(x, guard, body)
		got := Substitute(q, x, c)
		if !got.Equal(q) {
			t.Error("substitution should not descend through a quantifier rebinding the same variable")
		}
	})
}

func TestAtomNames(t *testing.T) {
	f := NewConjunction(NewAtom("p"), NewDisjunction(NewAtom("q"), NewNegation(NewAtom("p"))))
	names := atomNames([]Formula{f})
	if len(names) != 2 || names[0] != "p" || names[1] != "q" {
		t.Errorf("atomNames = %v, want [p q]", names)
	}
}
