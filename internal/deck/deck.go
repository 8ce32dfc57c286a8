// Package deck models a standard 52-card deck: 13 ranks in each of the 4
// French suits, spades (♠), diamonds (♦), clubs (♣) and hearts (♥).
package deck

import (
	"math"
	"strings"
)

const (
	// RankNum is the number of ranks: ace, 2..9, 10, jack, queen, king.
	RankNum = 13
	// SuitNum is the number of suits.
	SuitNum = 4
	// CardNum is the size of a standard deck.
	CardNum = RankNum * SuitNum
)

// Ranks holds one display rune per rank: 'A' for Ace, 'T' for 10,
// 'J' for Jack, 'Q' for Queen and 'K' for King.
var Ranks = [RankNum]rune{'A', '2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K'}

// Suits holds one display rune per suit, in spades, diamonds, clubs,
// hearts order.
var Suits = [SuitNum]rune{'♠', '♦', '♣', '♥'}

// Card is a single card encoded in one byte as rank*SuitNum + suit.
type Card uint8

// NewCard builds a card from a rank in [0, RankNum) and a suit in
// [0, SuitNum).
func NewCard(rank, suit int) Card {
	return Card(rank*SuitNum + suit)
}

// Rank returns the card rank, from 0 (ace) to 12 (king).
func (c Card) Rank() int {
	return (int(c) / SuitNum) % RankNum
}

// Suit returns the card suit, from 0 (♠) to 3 (♥).
func (c Card) Suit() int {
	return int(c) % SuitNum
}

// Color returns 0 for blacks (♠, ♣) and 1 for reds (♦, ♥).
func (c Card) Color() int {
	return int(c) & 1
}

func (c Card) IsBlack() bool {
	return c.Color() == 0
}

func (c Card) IsRed() bool {
	return !c.IsBlack()
}

// String formats a card as rank then suit, e.g. "A♠" or "T♦".
func (c Card) String() string {
	return string(Ranks[c.Rank()]) + string(Suits[c.Suit()])
}

// New creates a standard 52-card deck in A♠ A♦ A♣ A♥ 2♠ ... order.
func New() []Card {
	cards := make([]Card, CardNum)
	for i := range cards {
		cards[i] = Card(i)
	}
	return cards
}

// Shuffle permutes cards in place, picking swap positions with an LCG
// (a=1103515245, c=12345, m=2^31). The recurrence is deliberately computed
// in float64: the companion web app runs the same formula in JavaScript
// numbers, and integer arithmetic diverges from it for large seeds.
func Shuffle(cards []Card, seed uint64) {
	const (
		m = float64(0x80000000)
		a = float64(1103515245)
		c = float64(12345)
	)

	n := uint64(len(cards))
	for i := range cards {
		seed = uint64(math.Floor(math.Mod(a*float64(seed)+c, m)))

		j := int(seed % n)
		if i != j {
			cards[i], cards[j] = cards[j], cards[i]
		}
	}
}

// Deal creates a standard deck and shuffles it. Identical seeds always
// produce identical deals.
func Deal(seed uint64) []Card {
	cards := New()
	Shuffle(cards, seed)
	return cards
}

// Format concatenates the cards into a single string, e.g. "A♠2♦3♣4♥".
func Format(cards []Card) string {
	var sb strings.Builder
	for _, c := range cards {
		sb.WriteString(c.String())
	}
	return sb.String()
}
