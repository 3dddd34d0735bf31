package perft

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/chessboard/internal/chess"
)

// Result holds the counts of a perft run. Every counter except Nodes is taken
// over the moves that lead to the leaves.
type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Checks     uint64
	Checkmates uint64
}

type counters struct {
	nodes, cap, enp, cas, chk, mate uint64
}

func (c *counters) result() Result {
	return Result{
		Nodes:      atomic.LoadUint64(&c.nodes),
		Captures:   atomic.LoadUint64(&c.cap),
		EnPassant:  atomic.LoadUint64(&c.enp),
		Castles:    atomic.LoadUint64(&c.cas),
		Checks:     atomic.LoadUint64(&c.chk),
		Checkmates: atomic.LoadUint64(&c.mate),
	}
}

// Run counts the positions reachable from b in depth plies over moves that
// keep the mover's king safe. Parallel mode searches each root move in its
// own goroutine.
func Run(b *chess.Board, depth int, parallel bool) Result {
	var c counters
	if depth <= 0 {
		c.nodes = 1
		return c.result()
	}
	if !parallel {
		run(b, depth, &c)
		return c.result()
	}

	var wg sync.WaitGroup
	for _, m := range b.CurrentPlayer().SafeMoves() {
		m := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := m.Execute()
			if depth == 1 {
				leaf(m, next, &c)
				return
			}
			run(next, depth-1, &c)
		}()
	}
	wg.Wait()
	return c.result()
}

func run(b *chess.Board, depth int, c *counters) uint64 {
	var sum uint64
	for _, m := range b.CurrentPlayer().SafeMoves() {
		next := m.Execute()
		if depth == 1 {
			leaf(m, next, c)
			sum++
			continue
		}
		sum += run(next, depth-1, c)
	}
	return sum
}

func leaf(m chess.Move, next *chess.Board, c *counters) {
	atomic.AddUint64(&c.nodes, 1)
	if m.IsAttack() {
		atomic.AddUint64(&c.cap, 1)
	}
	if m.Kind() == chess.MoveKindPawnEnPassant {
		atomic.AddUint64(&c.enp, 1)
	}
	if m.IsCastlingMove() {
		atomic.AddUint64(&c.cas, 1)
	}
	if p := next.CurrentPlayer(); p.IsInCheck() {
		atomic.AddUint64(&c.chk, 1)
		if p.IsInCheckmate() {
			atomic.AddUint64(&c.mate, 1)
		}
	}
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string
	Nodes uint64
}

// Divide splits the perft node count by root move, sorted by move.
func Divide(b *chess.Board, depth int) []DivideEntry {
	moves := b.CurrentPlayer().SafeMoves()
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		nodes := uint64(1)
		if depth > 1 {
			var c counters
			nodes = run(m.Execute(), depth-1, &c)
		}
		entries = append(entries, DivideEntry{Move: m.UCI(), Nodes: nodes})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Move < entries[j].Move
	})
	return entries
}

// Report writes the counts with thousands separators.
func Report(w io.Writer, depth int, r Result, elapsed time.Duration) error {
	rate := 0
	if s := elapsed.Seconds(); s > 0 {
		rate = int(float64(r.Nodes) / s)
	}
	_, err := message.NewPrinter(language.English).
		Fprintf(w, "d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d chk=%d mate=%d (%.3fs elapsed)\n",
			depth, r.Nodes, rate, r.Captures, r.EnPassant, r.Castles, r.Checks, r.Checkmates, elapsed.Seconds())
	return err
}

func (r Result) String() string {
	return fmt.Sprintf("nodes=%d cap=%d enp=%d cas=%d chk=%d mate=%d",
		r.Nodes, r.Captures, r.EnPassant, r.Castles, r.Checks, r.Checkmates)
}
