package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessboard/internal/chess"
)

func TestDrawBoard(t *testing.T) {
	color.NoColor = true
	got := drawBoard(chess.CreateStandardBoard())

	lines := strings.Split(got, "\n")
	if len(lines) != 10 {
		t.Fatalf("unexpected line count: got=%d want=10\n%s", len(lines), got)
	}
	if want := " 8  r  n  b  q  k  b  n  r "; lines[0] != want {
		t.Errorf("unexpected first rank: got=%q want=%q", lines[0], want)
	}
	if want := " 4 " + strings.Repeat("   ", 8); lines[4] != want {
		t.Errorf("unexpected empty rank: got=%q want=%q", lines[4], want)
	}
	if lines[9] != "white to move" {
		t.Errorf("unexpected footer: got=%q", lines[9])
	}
}

func TestListMoves(t *testing.T) {
	b, err := chess.ParseFEN("k7/1Q6/2K5/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := listMoves(&buf, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "black is checkmated\n" {
		t.Errorf("unexpected output: got=%q", got)
	}
}
