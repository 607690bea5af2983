// Package board implements the bitboard position representation, move
// generation, and static exchange evaluation that the search tree is built
// on.
package board

// Color identifies the side to move or the owner of a piece.
type Color int8

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

// Piece identifies a piece kind, independent of color. NoPiece marks an
// empty square in both the mailbox and in undo-frame "captured piece"
// slots.
type Piece int8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceLetters = [...]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

func (p Piece) String() string {
	if p < NoPiece || p > King {
		return "?"
	}
	return string(pieceLetters[p])
}

// Square is a board square index: 0 = a1, 7 = h1, 56 = a8, 63 = h8.
type Square int8

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// File returns 0..7 for a..h.
func File(sq Square) int { return int(sq) & 7 }

// Rank returns 0..7 for rank 1..8.
func Rank(sq Square) int { return int(sq) >> 3 }

func MakeSquare(file, rank int) Square { return Square(rank*8 + file) }

// NoEpFile marks "no en-passant capture currently legal".
const NoEpFile = 8

// Castling right bits.
const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const maxUndo = 1024
