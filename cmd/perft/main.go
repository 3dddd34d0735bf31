package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/benbeisheim/chessboard/internal/chess"
	"github.com/benbeisheim/chessboard/internal/perft"
)

const (
	exitOK = iota
	exitErr
)

var (
	depth    = flag.Int("depth", 3, "perft depth in plies")
	parallel = flag.Bool("parallel", true, "search root moves concurrently")
	divide   = flag.Bool("divide", false, "print the node count below each root move")
	moves    = flag.Bool("moves", false, "list the legal moves of the side to move and exit")
	draw     = flag.Bool("draw", false, "draw the board before running")
	noColor  = flag.Bool("no-color", false, "disable colored output")
)

func main() {
	flag.Parse()

	if err := realMain(os.Stdout, flag.Args()); err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(w io.Writer, args []string) error {
	if *noColor {
		color.NoColor = true
	}

	fen := chess.StandardFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	b, err := chess.ParseFEN(fen)
	if err != nil {
		return err
	}

	if *draw {
		fmt.Fprintln(w, drawBoard(b))
	}
	if *moves {
		return listMoves(w, b)
	}
	if *divide {
		for _, e := range perft.Divide(b, *depth) {
			fmt.Fprintf(w, "%s: %d\n", e.Move, e.Nodes)
		}
	}

	start := time.Now()
	r := perft.Run(b, *depth, *parallel)
	return perft.Report(w, *depth, r, time.Since(start))
}

func listMoves(w io.Writer, b *chess.Board) error {
	p := b.CurrentPlayer()
	for _, m := range p.SafeMoves() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", m.UCI(), m); err != nil {
			return err
		}
	}
	switch {
	case p.IsInCheckmate():
		fmt.Fprintf(w, "%s is checkmated\n", p.Alliance())
	case p.IsInStalemate():
		fmt.Fprintf(w, "%s is stalemated\n", p.Alliance())
	case p.IsInCheck():
		fmt.Fprintf(w, "%s is in check\n", p.Alliance())
	}
	return nil
}

var (
	lightSquare = color.New(color.FgBlack, color.BgHiWhite)
	darkSquare  = color.New(color.FgBlack, color.BgGreen)
	label       = color.New(color.Bold)
)

// drawBoard renders the board with rank 8 at the top.
func drawBoard(b *chess.Board) string {
	builder := strings.Builder{}
	for row := 0; row < chess.NumTilesPerRow; row++ {
		_, _ = builder.WriteString(label.Sprintf(" %d ", chess.NumTilesPerRow-row))
		for col := 0; col < chess.NumTilesPerRow; col++ {
			tile := b.Tile(row*chess.NumTilesPerRow + col)
			cell := lightSquare
			if (row+col)%2 == 1 {
				cell = darkSquare
			}
			sym := " "
			if tile.IsOccupied() {
				sym = tile.String()
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := 0; col < chess.NumTilesPerRow; col++ {
		_, _ = builder.WriteString(label.Sprintf(" %c ", 'a'+col))
	}
	_, _ = builder.WriteString(fmt.Sprintf("\n%s to move", b.MoveMaker()))
	return builder.String()
}
