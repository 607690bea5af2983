package board

import "math/bits"

// slideAttacks computes sliding-piece attacks along a single line (a rank,
// file, or diagonal mask) using the hyperbola-quintessence o^(o-2r)
// technique: for an occupancy o restricted to the line and the piece's own
// bit p, the forward-direction blocker set is (o-2p) and the
// backward-direction blocker set is the bit-reversal of (reverse(o)-2*reverse(p)).
// XOR-ing the two together and masking to the line yields attacks up to and
// including the first blocker in both directions.
func slideAttacks(sq Square, occ, lineMask uint64) uint64 {
	p := squareMask[sq]
	o := occ & lineMask
	forward := o - 2*p
	reverse := bits.Reverse64(bits.Reverse64(o) - 2*bits.Reverse64(p))
	return (forward ^ reverse) & lineMask
}

// RookAttacks returns the squares a rook on sq attacks given board occupancy occ.
func RookAttacks(sq Square, occ uint64) uint64 {
	return slideAttacks(sq, occ, fileMaskOf[sq]) | slideAttacks(sq, occ, rankMaskOf[sq])
}

// BishopAttacks returns the squares a bishop on sq attacks given board occupancy occ.
func BishopAttacks(sq Square, occ uint64) uint64 {
	return slideAttacks(sq, occ, diagMaskOf[sq]) | slideAttacks(sq, occ, antiDiagMaskOf[sq])
}

// QueenAttacks is the union of RookAttacks and BishopAttacks.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}
