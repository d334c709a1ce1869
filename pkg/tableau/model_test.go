package tableau

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractModelDefaultsUnmentionedAtoms(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicCPL)
	e.AddInitial([]SignedFormula{NewSignedFormula(CPLTrue, p)})

	result, err := e.Build(context.Background())
	require.NoError(t, err)
	require.True(t, result.Satisfiable)

	model, err := ExtractModel(result.OpenBranches[0], LogicCPL, atomNames([]Formula{p, q}))
	require.NoError(t, err)

	want := map[string]string{"p": "true", "q": "false"}
	if diff := cmp.Diff(want, model.Assignment); diff != "" {
		t.Errorf("model assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractModelFromClosedBranchFails(t *testing.T) {
	p := NewAtom("p")
	b := newBranch(0)
	b.Add(NewSignedFormula(CPLTrue, p))
	b.Add(NewSignedFormula(CPLFalse, p))

	_, err := ExtractModel(b, LogicCPL, nil)
	assert.ErrorIs(t, err, ErrModelExtractionFromClosedBranch)
}

func TestWK3ModelDefaultsToUndefined(t *testing.T) {
	p, q := NewAtom("p"), NewAtom("q")
	e := mustEngine(t, LogicWK3)
	e.AddInitial([]SignedFormula{NewSignedFormula(WK3True, p)})

	result, err := e.Build(context.Background())
	require.NoError(t, err)
	require.True(t, result.Satisfiable)

	models, err := ExtractModels(result, []SignedFormula{
		NewSignedFormula(WK3True, p),
		NewSignedFormula(WK3True, q),
	})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "undefined", models[0].Assignment["q"])
}
