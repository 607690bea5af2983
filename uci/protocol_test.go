package uci_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfkomma/gochess/uci"
)

func runLines(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	p := uci.NewProtocol(&out)
	p.Run(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	return out.String()
}

func TestUciCommandAnnouncesIdentityAndOptions(t *testing.T) {
	out := runLines(t, "uci", "quit")
	require.Contains(t, out, "id name gochess")
	require.Contains(t, out, "id author halfkomma")
	require.Contains(t, out, "option name Hash")
	require.Contains(t, out, "option name MultiPV")
	require.Contains(t, out, "uciok")
}

func TestIsReadyRespondsReadyOk(t *testing.T) {
	out := runLines(t, "isready", "quit")
	require.Contains(t, out, "readyok")
}

func TestSetOptionHashRejectsOutOfRange(t *testing.T) {
	out := runLines(t, "setoption name Hash value 99999", "quit")
	require.Contains(t, out, "info string")
}

func TestPositionAndPerftRootCounts(t *testing.T) {
	out := runLines(t, "position startpos", "go perft 1", "quit")
	require.Contains(t, out, "Nodes searched: 20")
}

func TestPositionFenWithMoves(t *testing.T) {
	out := runLines(t,
		"position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 moves e2e4 e7e5",
		"go perft 1",
		"quit")
	require.Contains(t, out, "Nodes searched: 29")
}

func TestUnknownCommandReportsInfoString(t *testing.T) {
	out := runLines(t, "frobnicate", "quit")
	require.Contains(t, out, "info string")
}
