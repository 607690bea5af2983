package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/board"
	"github.com/halfkomma/gochess/eval"
)

func TestEvaluateStartposIsSymmetric(t *testing.T) {
	var p board.Position
	p.LoadStartpos()
	require.Zero(t, eval.Evaluate(&p))
}

func TestEvaluateFavorsExtraQueen(t *testing.T) {
	var p board.Position
	require.NoError(t, p.LoadFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1"))
	require.Positive(t, eval.Evaluate(&p))
}

func TestPhaseDecreasesAsMaterialComesOff(t *testing.T) {
	var full, bare board.Position
	full.LoadStartpos()
	require.NoError(t, bare.LoadFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1"))

	require.Greater(t, eval.Phase(&full), eval.Phase(&bare))
	require.Zero(t, eval.Phase(&bare))
}
