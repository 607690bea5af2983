// Package uci implements the Universal Chess Interface protocol loop:
// reading commands from an input stream, dispatching them against the
// Protocol's session state, and writing `info`/`bestmove` responses to an output stream.
// Grounded on uci/uciprotocol.go's command-table shape, with
// context.CancelFunc replaced by search.Context's atomic stop flag (the
// core's own cancellation primitive) and SearchInfo/UciScore folded into
// search.Info.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/halfkomma/gochess/board"
	"github.com/halfkomma/gochess/internal/log"
	"github.com/halfkomma/gochess/search"
)

const (
	engineName   = "gochess"
	engineAuthor = "halfkomma"

	minHashMB     = 1
	maxHashMB     = 128
	defaultHashMB = 16

	minMultiPV = 1
	maxMultiPV = 256
)

// Protocol owns the engine's mutable session state across commands: the
// current position, the shared transposition table, and the in-flight
// search (if any). One Protocol exists per process.
type Protocol struct {
	out io.Writer
	mu  sync.Mutex

	pos *board.Position
	tt  *search.TranspositionTable

	hashMB  int
	multiPV int

	searchCtx  *search.Context
	searchDone chan struct{}
}

// NewProtocol constructs a Protocol that writes its responses to out, with
// the position set to the initial startpos. The input stream is given to
// Run.
func NewProtocol(out io.Writer) *Protocol {
	pos := &board.Position{}
	pos.LoadStartpos()
	p := &Protocol{
		out:        out,
		pos:        pos,
		hashMB:     defaultHashMB,
		multiPV:    1,
		searchDone: make(chan struct{}),
	}
	close(p.searchDone)
	p.tt = search.NewTranspositionTable(p.hashMB)
	return p
}

// Run reads one command per line from in until `quit` or EOF, dispatching
// each to the matching handler. Grounded on uciProtocol.Run's scan loop.
func (p *Protocol) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			p.stopCommand()
			return
		}
		if err := p.handle(line); err != nil {
			log.Logger.Debug().Err(err).Str("line", line).Msg("uci command failed")
			p.printf("info string %s\n", err.Error())
		}
	}
}

func (p *Protocol) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := fields[0], fields[1:]

	if command == "stop" {
		p.stopCommand()
		return nil
	}

	select {
	case <-p.searchDone:
	default:
		return fmt.Errorf("search still running")
	}

	switch command {
	case "uci":
		return p.uciCommand()
	case "isready":
		return p.isReadyCommand()
	case "ucinewgame":
		return p.uciNewGameCommand()
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "setoption":
		return p.setOptionCommand(args)
	case "debug":
		return p.debugCommand(args)
	case "show":
		return p.showCommand()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (p *Protocol) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Protocol) uciCommand() error {
	p.printf("id name %s\n", engineName)
	p.printf("id author %s\n", engineAuthor)
	p.printf("option name Hash type spin default %d min %d max %d\n", defaultHashMB, minHashMB, maxHashMB)
	p.printf("option name MultiPV type spin default 1 min %d max %d\n", minMultiPV, maxMultiPV)
	p.printf("uciok\n")
	return nil
}

func (p *Protocol) isReadyCommand() error {
	p.printf("readyok\n")
	return nil
}

func (p *Protocol) uciNewGameCommand() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.LoadStartpos()
	p.tt.Clear()
	return nil
}

func (p *Protocol) debugCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("debug requires on|off")
	}
	switch args[0] {
	case "on":
		log.SetDebug(true)
	case "off":
		log.SetDebug(false)
	default:
		return fmt.Errorf("unknown debug argument %q", args[0])
	}
	return nil
}

func (p *Protocol) showCommand() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printf("%s\n", p.pos.String())
	return nil
}

func (p *Protocol) setOptionCommand(args []string) error {
	name, value, ok := parseSetOption(args)
	if !ok {
		return fmt.Errorf("malformed setoption arguments")
	}
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if mb < minHashMB || mb > maxHashMB {
			return fmt.Errorf("Hash out of range [%d,%d]", minHashMB, maxHashMB)
		}
		p.mu.Lock()
		p.hashMB = mb
		p.tt = search.NewTranspositionTable(mb)
		p.mu.Unlock()
	case "multipv":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < minMultiPV || n > maxMultiPV {
			return fmt.Errorf("MultiPV out of range [%d,%d]", minMultiPV, maxMultiPV)
		}
		p.mu.Lock()
		p.multiPV = n
		p.mu.Unlock()
	default:
		return fmt.Errorf("unhandled option %q", name)
	}
	return nil
}

// parseSetOption extracts the name/value pair from `setoption name <Name>
// value <V>`, where <Name> itself may contain spaces.
func parseSetOption(args []string) (name, value string, ok bool) {
	if len(args) < 4 || args[0] != "name" {
		return "", "", false
	}
	valueIdx := -1
	for i, a := range args {
		if a == "value" {
			valueIdx = i
			break
		}
	}
	if valueIdx == -1 || valueIdx == 1 {
		return "", "", false
	}
	name = strings.Join(args[1:valueIdx], " ")
	value = strings.Join(args[valueIdx+1:], " ")
	return name, value, true
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position requires startpos or fen")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	movesIdx := indexOf(args, "moves")

	switch args[0] {
	case "startpos":
		p.pos.LoadStartpos()
	case "fen":
		end := len(args)
		if movesIdx >= 0 {
			end = movesIdx
		}
		if end <= 1 {
			return fmt.Errorf("position fen requires fields")
		}
		fen := strings.Join(args[1:end], " ")
		if err := p.pos.LoadFEN(fen); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown position token %q", args[0])
	}

	if movesIdx >= 0 {
		for _, lan := range args[movesIdx+1:] {
			if !p.pos.PlayMove(lan) {
				log.Logger.Warn().Str("move", lan).Msg("illegal move in position moves, skipping")
				continue
			}
		}
	}
	return nil
}

func indexOf(args []string, target string) int {
	for i, a := range args {
		if a == target {
			return i
		}
	}
	return -1
}

func (p *Protocol) goCommand(args []string) error {
	if idx := indexOf(args, "perft"); idx >= 0 {
		depth := 1
		if idx+1 < len(args) {
			if d, err := strconv.Atoi(args[idx+1]); err == nil {
				depth = d
			}
		}
		return p.perftCommand(depth)
	}

	limits, maxDepth := parseGoArgs(args)

	p.mu.Lock()
	ctx := search.NewContext(p.tt)
	p.searchCtx = ctx
	p.searchDone = make(chan struct{})
	done := p.searchDone
	pos := p.pos
	sideIsWhite := pos.SideToMove == board.White
	p.mu.Unlock()

	tm := search.NewTimeManager(limits, sideIsWhite)
	if hard, ok := search.HardLimit(limits, sideIsWhite); ok {
		ctx.SetDeadline(hard)
	}

	go func() {
		defer close(done)
		result := search.IterativeDeepen(ctx, pos, tm, maxDepth, func(info search.Info) {
			p.printInfo(info)
		})
		p.printf("bestmove %s\n", result.BestMove.String())
	}()

	return nil
}

func (p *Protocol) perftCommand(depth int) error {
	p.mu.Lock()
	pos := p.pos
	p.mu.Unlock()

	var total uint64
	for _, entry := range board.PerftDivide(pos, depth) {
		p.printf("%s: %d\n", entry.Move.String(), entry.Nodes)
		total += entry.Nodes
	}
	p.printf("\nNodes searched: %d\n", total)
	return nil
}

func (p *Protocol) stopCommand() {
	p.mu.Lock()
	ctx := p.searchCtx
	p.mu.Unlock()
	if ctx != nil {
		ctx.Stop()
	}
}

func (p *Protocol) printInfo(info search.Info) {
	var scoreField string
	if info.Mate {
		scoreField = fmt.Sprintf("mate %d", info.MateIn)
	} else {
		scoreField = fmt.Sprintf("cp %d", info.Score)
	}

	ms := info.Elapsed.Milliseconds()
	nps := info.Nodes * 1000 / uint64(ms+1)

	var pv strings.Builder
	for i, m := range info.PV {
		if i > 0 {
			pv.WriteString(" ")
		}
		pv.WriteString(m.String())
	}

	p.printf("info depth %d score %s time %d nodes %d nps %d pv %s hashfull %d\n",
		info.Depth, scoreField, ms, info.Nodes, nps, pv.String(), info.HashFull)
}

// parseGoArgs extracts search.Limits and the requested fixed depth (0 if
// absent) from a `go` command's arguments. Grounded on
// uci/uciprotocol.go's parseLimits switch, adapted to the spec's
// millisecond-duration-based Limits rather than raw ints.
func parseGoArgs(args []string) (limits search.Limits, maxDepth int) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			limits.WhiteTime = msArg(args, &i)
		case "btime":
			limits.BlackTime = msArg(args, &i)
		case "winc":
			limits.WhiteIncrement = msArg(args, &i)
		case "binc":
			limits.BlackIncrement = msArg(args, &i)
		case "movetime":
			limits.MoveTime = msArg(args, &i)
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					maxDepth = d
				}
				i++
			}
		case "infinite":
			limits.Infinite = true
		}
	}
	return limits, maxDepth
}

func msArg(args []string, i *int) time.Duration {
	if *i+1 >= len(args) {
		return 0
	}
	v, err := strconv.Atoi(args[*i+1])
	*i++
	if err != nil {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}
