package freecell

import (
	"slices"

	"github.com/constf1/freecell-solver/internal/deck"
)

// KeySize is the fingerprint width: 4 foundation depths, then for each
// non-empty cascade a length byte plus its cards. Eight length bytes and
// 52 card bytes cover the worst case exactly.
const KeySize = BaseNum + PileNum + deck.CardNum

// Key is a canonical fixed-size fingerprint of a desk, usable directly as
// a map key. Two desks with equal keys are interchangeable for pruning:
// free-cell contents are excluded and cascades are sorted into a canonical
// order, so boards differing only in which cell or which cascade slot
// holds what fingerprint identically.
type Key [KeySize]byte

// Invariant computes the desk fingerprint: foundation depths in the first
// four slots, then the non-empty cascades sorted by content bytes, each
// written as its length followed by its cards, zero padded.
func (g *Game) Invariant() Key {
	var key Key

	for i := BaseStart; i < BaseEnd; i++ {
		key[i] = byte(len(g.desk[i]))
	}

	piles := make([]Pile, 0, PileNum)
	for i := PileStart; i < PileEnd; i++ {
		if len(g.desk[i]) > 0 {
			piles = append(piles, g.desk[i])
		}
	}
	slices.SortFunc(piles, func(a, b Pile) int {
		return slices.Compare(a, b)
	})

	pos := BaseNum
	for _, pile := range piles {
		key[pos] = byte(len(pile))
		pos++
		for _, card := range pile {
			key[pos] = byte(card)
			pos++
		}
	}
	return key
}
