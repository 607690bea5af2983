package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is the authoritative board state. See SPEC_FULL.md §3 for the
// invariants every exported method is required to preserve.
type Position struct {
	bitboards [2][7]uint64 // [color][piece], piece 0 unused
	mailbox   [64]mailboxEntry

	Occupancy     [2]uint64
	OccupancyBoth uint64

	SideToMove     Color
	CastlingRights uint8
	EpFile         int8 // 0..7, or NoEpFile
	HalfmoveClock  int
	FullmoveNumber int
	ZobristKey     uint64

	undo    [maxUndo]undoFrame
	undoLen int

	History []uint64 // capacity bounded by Reset/truncation to maxUndo
}

// mailboxEntry packs a piece kind and its color into one byte: bit 4 is
// color, bits 0-3 are the piece kind. A NoPiece kind (0) denotes empty
// regardless of the color bit.
type mailboxEntry uint8

func encodeMailbox(color Color, piece Piece) mailboxEntry {
	return mailboxEntry(piece) | mailboxEntry(color)<<4
}

func (e mailboxEntry) piece() Piece { return Piece(e & 0xF) }
func (e mailboxEntry) color() Color { return Color((e >> 4) & 1) }

type undoFrame struct {
	move                Move
	captured            Piece
	priorCastlingRights uint8
	priorEpFile         int8
	priorHalfmoveClock  int
	priorZobristKey     uint64
}

// Reset clears the position to an empty board with no history.
func (p *Position) Reset() {
	*p = Position{}
	p.EpFile = NoEpFile
	p.FullmoveNumber = 1
	p.History = make([]uint64, 0, maxUndo)
}

// LoadStartpos resets p to the standard initial position.
func (p *Position) LoadStartpos() {
	if err := p.LoadFEN(StartFEN); err != nil {
		panic("board: malformed built-in start FEN: " + err.Error())
	}
}

// LoadFEN parses the standard six-field FEN form into p, resetting it
// first. Missing halfmove/fullmove fields are treated as 0/1.
func (p *Position) LoadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("board: malformed fen %q", fen)
	}

	p.Reset()

	sq := A8
	for _, ch := range fields[0] {
		switch {
		case ch == '/':
			sq -= 16
		case ch >= '1' && ch <= '8':
			sq += Square(ch - '0')
		default:
			color, piece, err := pieceFromFENChar(byte(ch))
			if err != nil {
				return err
			}
			p.addPiece(color, piece, sq)
			sq++
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return fmt.Errorf("board: malformed side to move %q", fields[1])
	}

	p.CastlingRights = 0
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.CastlingRights |= WhiteKingSide
			case 'Q':
				p.CastlingRights |= WhiteQueenSide
			case 'k':
				p.CastlingRights |= BlackKingSide
			case 'q':
				p.CastlingRights |= BlackQueenSide
			}
		}
	}

	p.EpFile = NoEpFile
	if fields[3] != "-" {
		if epSq := parseSquareName(fields[3]); epSq != NoSquare {
			p.EpFile = int8(File(epSq))
		}
	}

	p.HalfmoveClock = 0
	if len(fields) > 4 {
		if v, err := strconv.Atoi(fields[4]); err == nil {
			p.HalfmoveClock = v
		}
	}
	p.FullmoveNumber = 1
	if len(fields) > 5 {
		if v, err := strconv.Atoi(fields[5]); err == nil {
			p.FullmoveNumber = v
		}
	}

	p.refreshOccupancy()
	p.ZobristKey = p.computeKey()
	p.History = append(p.History, p.ZobristKey)
	return nil
}

func pieceFromFENChar(ch byte) (Color, Piece, error) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch - 'A' + 'a'
	}
	switch lower {
	case 'p':
		return color, Pawn, nil
	case 'n':
		return color, Knight, nil
	case 'b':
		return color, Bishop, nil
	case 'r':
		return color, Rook, nil
	case 'q':
		return color, Queen, nil
	case 'k':
		return color, King, nil
	}
	return color, NoPiece, fmt.Errorf("board: unknown fen piece %q", string(ch))
}

// FEN renders the position's six standard fields.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := MakeSquare(file, rank)
			entry := p.mailbox[sq]
			if entry.piece() == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceToFENChar(entry.piece(), entry.color()))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank != 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastlingRights&WhiteKingSide != 0 {
			sb.WriteByte('K')
		}
		if p.CastlingRights&WhiteQueenSide != 0 {
			sb.WriteByte('Q')
		}
		if p.CastlingRights&BlackKingSide != 0 {
			sb.WriteByte('k')
		}
		if p.CastlingRights&BlackQueenSide != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EpFile == NoEpFile {
		sb.WriteByte('-')
	} else {
		rank := 5 // White to move: pawn double-pushed from rank 7, ep target rank 6
		if p.SideToMove == Black {
			rank = 2 // Black to move: pawn double-pushed from rank 2, ep target rank 3
		}
		sb.WriteString(squareName(MakeSquare(int(p.EpFile), rank)))
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}

func (p *Position) String() string { return p.FEN() }

func pieceToFENChar(piece Piece, color Color) string {
	s := string(pieceLetters[piece])
	if color == White {
		s = strings.ToUpper(s)
	}
	return s
}

// PieceAt returns the piece kind and color occupying sq, or (NoPiece, _) if empty.
func (p *Position) PieceAt(sq Square) (Piece, Color) {
	e := p.mailbox[sq]
	return e.piece(), e.color()
}

func (p *Position) pieceAt(sq Square) Piece { return p.mailbox[sq].piece() }

func (p *Position) addPiece(color Color, piece Piece, sq Square) {
	p.bitboards[color][piece] |= squareMask[sq]
	p.mailbox[sq] = encodeMailbox(color, piece)
	p.ZobristKey ^= pieceKey[color][piece][sq]
}

func (p *Position) removePiece(color Color, piece Piece, sq Square) {
	p.bitboards[color][piece] &^= squareMask[sq]
	p.mailbox[sq] = mailboxEntry(NoPiece)
	p.ZobristKey ^= pieceKey[color][piece][sq]
}

func (p *Position) relocatePiece(color Color, piece Piece, from, to Square) {
	p.bitboards[color][piece] ^= squareMask[from] | squareMask[to]
	p.mailbox[from] = mailboxEntry(NoPiece)
	p.mailbox[to] = encodeMailbox(color, piece)
	p.ZobristKey ^= pieceKey[color][piece][from] ^ pieceKey[color][piece][to]
}

func (p *Position) refreshOccupancy() {
	for c := White; c <= Black; c++ {
		var occ uint64
		for piece := Pawn; piece <= King; piece++ {
			occ |= p.bitboards[c][piece]
		}
		p.Occupancy[c] = occ
	}
	p.OccupancyBoth = p.Occupancy[White] | p.Occupancy[Black]
}

// PieceBitboard returns the bitboard of a single (color, piece) plane.
func (p *Position) PieceBitboard(color Color, piece Piece) uint64 {
	return p.bitboards[color][piece]
}

func (p *Position) computeKey() uint64 {
	var key uint64
	if p.SideToMove == Black {
		key ^= sideKey
	}
	key ^= castleKey[p.CastlingRights]
	if p.EpFile != NoEpFile {
		key ^= epKey[p.EpFile]
	}
	for sq := A1; sq < 64; sq++ {
		e := p.mailbox[sq]
		if e.piece() != NoPiece {
			key ^= pieceKey[e.color()][e.piece()][sq]
		}
	}
	return key
}

func castleRookSquares(color Color, kingTo Square) (from, to Square) {
	switch {
	case color == White && kingTo == G1:
		return H1, F1
	case color == White && kingTo == C1:
		return A1, D1
	case color == Black && kingTo == G8:
		return H8, F8
	default: // color == Black && kingTo == C8
		return A8, D8
	}
}

func (p *Position) pushUndo(u undoFrame) {
	if p.undoLen >= len(p.undo) {
		panic("board: undo stack overflow")
	}
	p.undo[p.undoLen] = u
	p.undoLen++
}

func (p *Position) popUndo() undoFrame {
	p.undoLen--
	return p.undo[p.undoLen]
}

func (p *Position) pushHistory() {
	if len(p.History) >= maxUndo {
		// Longer games truncate the repetition window; accepted per spec.
		p.History = p.History[1:]
	}
	p.History = append(p.History, p.ZobristKey)
}

// MakeMove applies m unconditionally. m must be pseudo-legal for the
// current position; callers (move generation's legality filter, the search
// tree) are responsible for undoing an illegal move via UndoMove.
func (p *Position) MakeMove(m Move) {
	from, to := m.From(), m.To()
	flags := m.Flags()
	promote := m.Promote()
	color := p.SideToMove
	enemy := color.Opposite()
	movingPiece := p.pieceAt(from)

	captured := NoPiece
	switch flags {
	case EnPassant:
		captured = Pawn
	case Capture:
		captured = p.pieceAt(to)
	}

	p.pushUndo(undoFrame{
		move:                m,
		captured:            captured,
		priorCastlingRights: p.CastlingRights,
		priorEpFile:         p.EpFile,
		priorHalfmoveClock:  p.HalfmoveClock,
		priorZobristKey:     p.ZobristKey,
	})

	if p.EpFile != NoEpFile {
		p.ZobristKey ^= epKey[p.EpFile]
	}
	p.EpFile = NoEpFile

	switch flags {
	case EnPassant:
		capSq := to - 8
		if color == Black {
			capSq = to + 8
		}
		p.removePiece(enemy, Pawn, capSq)
	case Capture:
		p.removePiece(enemy, captured, to)
	case Castle:
		rookFrom, rookTo := castleRookSquares(color, to)
		p.relocatePiece(color, Rook, rookFrom, rookTo)
	case DoublePawnPush:
		p.EpFile = int8(File(from))
		p.ZobristKey ^= epKey[p.EpFile]
	}

	if promote != NoPiece {
		p.removePiece(color, Pawn, from)
		p.addPiece(color, promote, to)
	} else {
		p.relocatePiece(color, movingPiece, from, to)
	}

	oldRights := p.CastlingRights
	p.CastlingRights &= castleRightsMask[from] & castleRightsMask[to]
	if p.CastlingRights != oldRights {
		p.ZobristKey ^= castleKey[oldRights] ^ castleKey[p.CastlingRights]
	}

	p.refreshOccupancy()

	if movingPiece == Pawn || captured != NoPiece {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	p.SideToMove = enemy
	p.ZobristKey ^= sideKey
	if color == Black {
		p.FullmoveNumber++
	}

	p.pushHistory()
}

// UndoMove reverses the effect of MakeMove(m), where m was the most
// recently made move. Scalar fields (castling rights, ep file, halfmove
// clock, hash) are restored directly from the undo frame; board state is
// restored by replaying the piece movement in reverse.
func (p *Position) UndoMove(m Move) {
	u := p.popUndo()
	if len(p.History) > 0 {
		p.History = p.History[:len(p.History)-1]
	}

	mover := p.SideToMove.Opposite()
	if mover == Black {
		p.FullmoveNumber--
	}
	p.SideToMove = mover

	from, to := m.From(), m.To()
	flags := m.Flags()
	promote := m.Promote()
	enemy := mover.Opposite()

	if promote != NoPiece {
		p.removePiece(mover, promote, to)
		p.addPiece(mover, Pawn, from)
	} else {
		movingPiece := p.pieceAt(to)
		p.relocatePiece(mover, movingPiece, to, from)
	}

	switch flags {
	case EnPassant:
		capSq := to - 8
		if mover == Black {
			capSq = to + 8
		}
		p.addPiece(enemy, Pawn, capSq)
	case Capture:
		p.addPiece(enemy, u.captured, to)
	case Castle:
		rookFrom, rookTo := castleRookSquares(mover, to)
		p.relocatePiece(mover, Rook, rookTo, rookFrom)
	}

	p.CastlingRights = u.priorCastlingRights
	p.EpFile = u.priorEpFile
	p.HalfmoveClock = u.priorHalfmoveClock
	p.ZobristKey = u.priorZobristKey

	p.refreshOccupancy()
}

// MakeNullMove flips the side to move without moving a piece. Illegal
// while in check or with only king+pawns on the moving side; see
// IsNullMoveAllowed.
func (p *Position) MakeNullMove() {
	p.pushUndo(undoFrame{
		move:                MoveEmpty,
		captured:            NoPiece,
		priorCastlingRights: p.CastlingRights,
		priorEpFile:         p.EpFile,
		priorHalfmoveClock:  p.HalfmoveClock,
		priorZobristKey:     p.ZobristKey,
	})

	if p.EpFile != NoEpFile {
		p.ZobristKey ^= epKey[p.EpFile]
	}
	p.EpFile = NoEpFile
	p.HalfmoveClock++
	p.SideToMove = p.SideToMove.Opposite()
	p.ZobristKey ^= sideKey

	p.pushHistory()
}

func (p *Position) UndoNullMove() {
	u := p.popUndo()
	if len(p.History) > 0 {
		p.History = p.History[:len(p.History)-1]
	}
	p.SideToMove = p.SideToMove.Opposite()
	p.CastlingRights = u.priorCastlingRights
	p.EpFile = u.priorEpFile
	p.HalfmoveClock = u.priorHalfmoveClock
	p.ZobristKey = u.priorZobristKey
}

// PlayMove parses a pure coordinate notation string (e2e4, e7e8q) and
// applies it if it names a legal move. Returns false without mutating p if
// the move is not legal in the current position.
func (p *Position) PlayMove(lan string) bool {
	if len(lan) < 4 {
		return false
	}
	from := parseSquareName(lan[0:2])
	to := parseSquareName(lan[2:4])
	if from == NoSquare || to == NoSquare {
		return false
	}
	var promote = NoPiece
	if len(lan) > 4 {
		var ok bool
		promote, ok = promoteLetterToPiece[lan[4]]
		if !ok {
			return false
		}
	}

	for _, m := range p.LegalMoves(nil) {
		if m.From() == from && m.To() == to && m.Promote() == promote {
			p.MakeMove(m)
			return true
		}
	}
	return false
}

// KingSquare returns the square of color's king.
func (p *Position) KingSquare(color Color) Square {
	return firstOne(p.bitboards[color][King])
}

// IsCheck reports whether color's king is currently attacked.
func (p *Position) IsCheck(color Color) bool {
	return p.IsSquareAttacked(p.KingSquare(color), color.Opposite())
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	occ := p.OccupancyBoth
	if pawnAttacks[by.Opposite()][sq]&p.bitboards[by][Pawn] != 0 {
		return true
	}
	if knightAttacks[sq]&p.bitboards[by][Knight] != 0 {
		return true
	}
	if kingAttacks[sq]&p.bitboards[by][King] != 0 {
		return true
	}
	bishopsQueens := p.bitboards[by][Bishop] | p.bitboards[by][Queen]
	if BishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.bitboards[by][Rook] | p.bitboards[by][Queen]
	if RookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// attackersTo returns every piece of either color attacking sq, given an
// explicit occupancy (used by SEE with a simulated, mutated occupancy).
func (p *Position) attackersTo(sq Square, occ uint64) uint64 {
	return (pawnAttacks[Black][sq] & p.bitboards[White][Pawn]) |
		(pawnAttacks[White][sq] & p.bitboards[Black][Pawn]) |
		(knightAttacks[sq] & (p.bitboards[White][Knight] | p.bitboards[Black][Knight])) |
		(kingAttacks[sq] & (p.bitboards[White][King] | p.bitboards[Black][King])) |
		(BishopAttacks(sq, occ) & (p.bitboards[White][Bishop] | p.bitboards[Black][Bishop] | p.bitboards[White][Queen] | p.bitboards[Black][Queen])) |
		(RookAttacks(sq, occ) & (p.bitboards[White][Rook] | p.bitboards[Black][Rook] | p.bitboards[White][Queen] | p.bitboards[Black][Queen]))
}

// IsNullMoveAllowed reports whether a null move may be tried: not in check,
// and the side to move has more than just king and pawns.
func (p *Position) IsNullMoveAllowed() bool {
	side := p.SideToMove
	if p.IsCheck(side) {
		return false
	}
	nonPawnMaterial := p.bitboards[side][Knight] | p.bitboards[side][Bishop] |
		p.bitboards[side][Rook] | p.bitboards[side][Queen]
	return nonPawnMaterial != 0
}

// IsRepetitionDraw scans history backward two plies at a time, up to
// HalfmoveClock plies, for a matching key.
func (p *Position) IsRepetitionDraw() bool {
	n := len(p.History)
	if n == 0 {
		return false
	}
	cur := p.History[n-1]
	limit := p.HalfmoveClock
	for i := 2; i <= limit && i < n; i += 2 {
		if p.History[n-1-i] == cur {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports the 50-move (100-ply) rule.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfmoveClock >= 100
}

// IsInsufficientMaterial reports draws by insufficient mating material:
// lone kings, king+minor vs king, or king+same-color-bishop vs
// king+same-color-bishop.
func (p *Position) IsInsufficientMaterial() bool {
	if p.bitboards[White][Pawn]|p.bitboards[Black][Pawn] != 0 {
		return false
	}
	if p.bitboards[White][Rook]|p.bitboards[Black][Rook] != 0 {
		return false
	}
	if p.bitboards[White][Queen]|p.bitboards[Black][Queen] != 0 {
		return false
	}

	whiteMinors := popCount(p.bitboards[White][Knight]) + popCount(p.bitboards[White][Bishop])
	blackMinors := popCount(p.bitboards[Black][Knight]) + popCount(p.bitboards[Black][Bishop])

	if whiteMinors == 0 && blackMinors == 0 {
		return true
	}
	if whiteMinors+blackMinors == 1 && popCount(p.bitboards[White][Knight]|p.bitboards[Black][Knight]) <= 1 {
		return true
	}
	if whiteMinors == 1 && blackMinors == 1 &&
		popCount(p.bitboards[White][Bishop]) == 1 && popCount(p.bitboards[Black][Bishop]) == 1 {
		whiteBishopSq := firstOne(p.bitboards[White][Bishop])
		blackBishopSq := firstOne(p.bitboards[Black][Bishop])
		return squareColor(whiteBishopSq) == squareColor(blackBishopSq)
	}
	return false
}

func squareColor(sq Square) int {
	return (File(sq) + Rank(sq)) & 1
}

// IsDraw reports the three automatic draw conditions the search treats
// identically: fifty-move, repetition, and insufficient material.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveDraw() || p.IsRepetitionDraw() || p.IsInsufficientMaterial()
}
