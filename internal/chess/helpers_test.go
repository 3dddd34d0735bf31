package chess

import (
	"sort"
	"testing"
)

func mustParseFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("unexpected error parsing %q: %v", fen, err)
	}
	return b
}

func mustCoordinate(t *testing.T, position string) int {
	t.Helper()
	c, err := CoordinateAt(position)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

// findMove returns the move matching a UCI string such as "e2e4".
func findMove(t *testing.T, moves []Move, uci string) Move {
	t.Helper()
	for _, m := range moves {
		if m.UCI() == uci {
			return m
		}
	}
	t.Fatalf("move %s not found among %v", uci, uciList(moves))
	return NullMove
}

func play(t *testing.T, b *Board, ucis ...string) *Board {
	t.Helper()
	for _, uci := range ucis {
		m := findMove(t, b.CurrentPlayer().LegalMoves(), uci)
		tr := b.CurrentPlayer().MakeMove(m)
		if tr.Status() != MoveStatusDone {
			t.Fatalf("unexpected status for %s: got=%s want=%s", uci, tr.Status(), MoveStatusDone)
		}
		b = tr.Board()
	}
	return b
}

func uciList(moves []Move) []string {
	list := make([]string, 0, len(moves))
	for _, m := range moves {
		list = append(list, m.UCI())
	}
	sort.Strings(list)
	return list
}

func destinations(moves []Move) []string {
	list := make([]string, 0, len(moves))
	for _, m := range moves {
		list = append(list, PositionAt(m.DestinationCoordinate()))
	}
	sort.Strings(list)
	return list
}

func countKind(moves []Move, kind MoveKind) int {
	var n int
	for _, m := range moves {
		if m.Kind() == kind {
			n++
		}
	}
	return n
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
