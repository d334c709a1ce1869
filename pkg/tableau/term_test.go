package tableau

import "testing"

func TestTermEquality(t *testing.T) {
	if !NewConstant("a").Equal(NewConstant("a")) {
		t.Error("constants with the same name should be equal")
	}
	if NewConstant("a").Equal(NewConstant("b")) {
		t.Error("constants with different names should not be equal")
	}
	if NewVariable("x").IsVariable() != true {
		t.Error("Variable.IsVariable() should be true")
	}
	if NewConstant("a").IsVariable() != false {
		t.Error("Constant.IsVariable() should be false")
	}
}

func TestFunctionSubstitution(t *testing.T) {
	x := NewVariable("x")
	a := NewConstant("a")
	f := NewFunction("f", x, NewConstant("b"))

	got := substituteTerm(f, "x", a)
	want := NewFunction("f", a, NewConstant("b"))
	if !got.Equal(want) {
		t.Errorf("substituteTerm(%s, x, a) = %s, want %s", f, got, want)
	}
}
