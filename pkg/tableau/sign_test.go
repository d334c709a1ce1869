package tableau

import "testing"

func TestCPLSignContradicts(t *testing.T) {
	if !CPLTrue.Contradicts(CPLFalse) {
		t.Error("T should contradict F")
	}
	if CPLTrue.Contradicts(CPLTrue) {
		t.Error("T should not contradict T")
	}
}

func TestWK3SignContradicts(t *testing.T) {
	cases := []struct {
		a, b WK3Sign
		want bool
	}{
		{WK3True, WK3False, true},
		{WK3True, WK3True, false},
		{WK3True, WK3Undefined, false},
		{WK3False, WK3Undefined, false},
		{WK3Undefined, WK3Undefined, false},
	}
	for _, c := range cases {
		if got := c.a.Contradicts(c.b); got != c.want {
			t.Errorf("%s.Contradicts(%s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestWKRQSignContradicts(t *testing.T) {
	if !WKRQTrue.Contradicts(WKRQFalse) {
		t.Error("T should contradict F")
	}
	if WKRQMay.Contradicts(WKRQNot) {
		t.Error("M should not contradict N — epistemic coexistence")
	}
	if WKRQMay.Contradicts(WKRQMay) {
		t.Error("M should not contradict itself")
	}
}

func TestFDESignNeverContradicts(t *testing.T) {
	for _, a := range fdeAllSigns {
		for _, b := range fdeAllSigns {
			if a.Contradicts(b) {
				t.Errorf("%s.Contradicts(%s) = true, want false (FDE never closes)", a, b)
			}
		}
	}
}

func TestSignedFormulaContradicts(t *testing.T) {
	p := NewAtom("p")
	sf1 := NewSignedFormula(CPLTrue, p)
	sf2 := NewSignedFormula(CPLFalse, p)
	sf3 := NewSignedFormula(CPLFalse, NewAtom("q"))

	if !sf1.Contradicts(sf2) {
		t.Error("T:p and F:p should contradict")
	}
	if sf1.Contradicts(sf3) {
		t.Error("T:p and F:q should not contradict — different formulas")
	}
}
