package freecell

import (
	"iter"
	"strconv"
	"strings"

	"github.com/constf1/freecell-solver/internal/deck"
)

// Move is one step in the game: a card travels from the giver spot to the
// taker spot. Packed into two bytes because paths are stored by the
// thousands in the solver frontier.
type Move struct {
	giver, taker uint8
}

func NewMove(giver, taker int) Move {
	return Move{giver: uint8(giver), taker: uint8(taker)}
}

func (m Move) Giver() int {
	return int(m.giver)
}

func (m Move) Taker() int {
	return int(m.taker)
}

// Path is an ordered move sequence applied to a fixed initial deal. It is
// the only persisted form of a board: boards are rebuilt by replay.
type Path []Move

func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// Hex serializes the path as two hexadecimal digits per move, giver spot
// first, in the compact spot order of SpotHex.
func (p Path) Hex() string {
	var sb strings.Builder
	sb.Grow(2 * len(p))
	for _, mv := range p {
		sb.WriteString(SpotHex(mv.Giver()))
		sb.WriteString(SpotHex(mv.Taker()))
	}
	return sb.String()
}

// DemoLink formats a shareable replay link for the companion web app.
func DemoLink(deal uint64, p Path) string {
	return "https://constf1.github.io/angular/freecell-demo?deal=" +
		strconv.FormatUint(deal, 10) + "&path=" + p.Hex()
}

// Pile is one card stack of the desk.
type Pile []deck.Card

// Game owns the 16-stack desk and the path that produced it from the
// initial deal. It is mutable and single-owner; the solver rebuilds
// arbitrary candidate boards on it by truncate-and-replay.
type Game struct {
	desk [DeskSize]Pile
	path Path
}

func NewGame() *Game {
	return &Game{}
}

// Path returns the current move sequence. The slice is owned by the game;
// callers that keep it must clone it first.
func (g *Game) Path() Path {
	return g.path
}

// PileAt returns the card stack at the given spot, bottom card first.
// The slice is owned by the game.
func (g *Game) PileAt(spot int) []deck.Card {
	return g.desk[spot]
}

func (g *Game) Clear() {
	g.path = g.path[:0]
	for i := range g.desk {
		g.desk[i] = g.desk[i][:0]
	}
}

// Deal clears the desk and distributes the cards round-robin across the
// eight cascades.
func (g *Game) Deal(cards []deck.Card) {
	g.Clear()
	for i, card := range cards {
		spot := PileStart + i%PileNum
		g.desk[spot] = append(g.desk[spot], card)
	}
}

// MoveCard pops the top card of giver, pushes it onto taker and appends
// the move to the path. Legality is the caller's responsibility; an empty
// giver is an invariant violation and panics.
func (g *Game) MoveCard(giver, taker int) {
	row := g.desk[giver]
	if len(row) == 0 {
		panic("freecell: move from empty giver " + SpotName(giver))
	}
	card := row[len(row)-1]
	g.desk[giver] = row[:len(row)-1]
	g.desk[taker] = append(g.desk[taker], card)
	g.path = append(g.path, NewMove(giver, taker))
}

// Backward pops moves off the path, returning each card from taker to
// giver, until the path length equals mark. Exact inverse of MoveCard.
func (g *Game) Backward(mark int) {
	for len(g.path) > mark {
		mv := g.path[len(g.path)-1]
		g.path = g.path[:len(g.path)-1]

		taker := g.desk[mv.Taker()]
		if len(taker) == 0 {
			panic("freecell: undo from empty taker " + SpotName(mv.Taker()))
		}
		card := taker[len(taker)-1]
		g.desk[mv.Taker()] = taker[:len(taker)-1]
		g.desk[mv.Giver()] = append(g.desk[mv.Giver()], card)
	}
}

func (g *Game) Rewind() {
	g.Backward(0)
}

// Forward applies the moves in order.
func (g *Game) Forward(moves []Move) {
	for _, mv := range moves {
		g.MoveCard(mv.Giver(), mv.Taker())
	}
}

// SetPath rewinds to the initial deal and replays the given moves.
func (g *Game) SetPath(moves []Move) {
	g.Rewind()
	g.Forward(moves)
}

// IsMoveForward reports whether the move is not the exact reverse of the
// previous one. Undoing the last move would only oscillate.
func (g *Game) IsMoveForward(giver, taker int) bool {
	if len(g.path) == 0 {
		return true
	}
	last := g.path[len(g.path)-1]
	return last.Giver() != taker || last.Taker() != giver
}

// BaseRanks holds the minimum foundation depth per color.
type BaseRanks struct {
	black, red int
}

func NewBaseRanks(black, red int) BaseRanks {
	return BaseRanks{black: black, red: red}
}

// NextRank returns 1 + the minimum foundation rank among the suits of the
// opposite color.
func (r BaseRanks) NextRank(card deck.Card) int {
	if card.IsBlack() {
		return 1 + r.red
	}
	return 1 + r.black
}

// Covers reports whether the card can be promoted to its foundation
// without stranding a card of the opposite color: its rank must not exceed
// NextRank.
func (r BaseRanks) Covers(card deck.Card) bool {
	return r.NextRank(card) >= card.Rank()
}

// BaseMinRanks scans the foundations and returns the minimum depth per
// color. Foundation spot parity matches suit parity.
func (g *Game) BaseMinRanks() BaseRanks {
	black, red := deck.RankNum, deck.RankNum
	for i := BaseStart; i < BaseEnd; i++ {
		rank := len(g.desk[i])
		if deck.Card(i).IsBlack() {
			black = min(black, rank)
		} else {
			red = min(red, rank)
		}
	}
	return NewBaseRanks(black, red)
}

// MoveCardsAuto repeatedly promotes safe top cards to their foundations
// until no progress is made, and returns the number of cards promoted.
// A card is safe when BaseRanks.Covers holds for it, so greedy auto-play
// can never strand a card needed to continue a tableau of the other color.
func (g *Game) MoveCardsAuto() int {
	count := 0
	for done := false; !done; {
		done = true
		ranks := g.BaseMinRanks()
		for giver := BaseEnd; giver < DeskSize; giver++ {
			card, ok := g.CardAt(giver)
			if !ok || !ranks.Covers(card) {
				continue
			}
			if taker, ok := g.BaseFor(card); ok {
				count++
				g.MoveCard(giver, taker)
				done = false
				break
			}
		}
	}
	return count
}

func (g *Game) CountEmptyCells() int {
	count := 0
	for i := CellStart; i < CellEnd; i++ {
		if len(g.desk[i]) == 0 {
			count++
		}
	}
	return count
}

func (g *Game) CountEmptyPiles() int {
	count := 0
	for i := PileStart; i < PileEnd; i++ {
		if len(g.desk[i]) == 0 {
			count++
		}
	}
	return count
}

func (g *Game) CountEmpty() int {
	return g.CountEmptyCells() + g.CountEmptyPiles()
}

// CountSolved returns the number of cards already on foundations.
func (g *Game) CountSolved() int {
	count := 0
	for i := BaseStart; i < BaseEnd; i++ {
		count += len(g.desk[i])
	}
	return count
}

// CountUnsolved returns the number of cards still on cascades or cells.
func (g *Game) CountUnsolved() int {
	count := 0
	for i := BaseEnd; i < DeskSize; i++ {
		count += len(g.desk[i])
	}
	return count
}

// IsDone reports whether every cascade and cell is empty.
func (g *Game) IsDone() bool {
	for i := BaseEnd; i < DeskSize; i++ {
		if len(g.desk[i]) > 0 {
			return false
		}
	}
	return true
}

// isLock reports whether the card at cardIndex sits above a same-suit,
// lower-rank card. Such a card must be moved away before its target can
// reach the foundation.
func isLock(pile Pile, cardIndex int) bool {
	cardA := pile[cardIndex]
	for prev := 0; prev < cardIndex; prev++ {
		cardB := pile[prev]
		if cardA.Rank() > cardB.Rank() && cardA.Suit() == cardB.Suit() {
			return true
		}
	}
	return false
}

func (g *Game) countLocksAt(spot int) int {
	pile := g.desk[spot]
	count := 0
	for i := 1; i < len(pile); i++ {
		if isLock(pile, i) {
			count++
		}
	}
	return count
}

// CountLocks sums the locked cards over all cascades.
func (g *Game) CountLocks() int {
	count := 0
	for i := PileStart; i < PileEnd; i++ {
		count += g.countLocksAt(i)
	}
	return count
}

// EstimatePathLen is an optimistic lower bound on the total solution
// length: moves made so far plus one move per unsolved card plus one per
// lock. Used for pruning only; not guaranteed admissible.
func (g *Game) EstimatePathLen() int {
	return len(g.path) + g.CountUnsolved() + g.CountLocks()
}

// CardAt returns the top card of the spot, if any.
func (g *Game) CardAt(spot int) (deck.Card, bool) {
	pile := g.desk[spot]
	if len(pile) == 0 {
		return 0, false
	}
	return pile[len(pile)-1], true
}

// BaseFor returns the foundation spot the card can be played to right
// now: its suit's foundation, when the foundation depth equals the card
// rank.
func (g *Game) BaseFor(card deck.Card) (int, bool) {
	spot := BaseStart + card.Suit()
	if len(g.desk[spot]) == card.Rank() {
		return spot, true
	}
	return 0, false
}

// EmptyCell returns the first empty free cell, if any.
func (g *Game) EmptyCell() (int, bool) {
	for i := CellStart; i < CellEnd; i++ {
		if len(g.desk[i]) == 0 {
			return i, true
		}
	}
	return 0, false
}

// EmptyPile returns the first empty cascade, if any.
func (g *Game) EmptyPile() (int, bool) {
	for i := PileStart; i < PileEnd; i++ {
		if len(g.desk[i]) == 0 {
			return i, true
		}
	}
	return 0, false
}

// tryMove yields the candidate unless it undoes the previous move.
// Returns false when the consumer wants no more moves.
func (g *Game) tryMove(giver, taker int, yield func(Move) bool) bool {
	if !g.IsMoveForward(giver, taker) {
		return true
	}
	return yield(NewMove(giver, taker))
}

func (g *Game) movesToBase(yield func(Move) bool) bool {
	for giver := BaseEnd; giver < DeskSize; giver++ {
		card, ok := g.CardAt(giver)
		if !ok {
			continue
		}
		if taker, ok := g.BaseFor(card); ok {
			if !g.tryMove(giver, taker, yield) {
				return false
			}
		}
	}
	return true
}

func (g *Game) movesToTableau(yield func(Move) bool) bool {
	// Cells and piles first.
	for giver := BaseEnd; giver < DeskSize; giver++ {
		freeCard, ok := g.CardAt(giver)
		if !ok {
			continue
		}
		for taker := PileStart; taker < PileEnd; taker++ {
			pileCard, ok := g.CardAt(taker)
			if !ok {
				continue
			}
			if giver != taker && IsTableau(pileCard, freeCard) {
				if !g.tryMove(giver, taker, yield) {
					return false
				}
			}
		}
	}

	// A card may leave its foundation for a tableau only if its rank is
	// above the safe rank: its promotion was not irrevocable.
	ranks := g.BaseMinRanks()
	for giver := BaseStart; giver < BaseEnd; giver++ {
		freeCard, ok := g.CardAt(giver)
		if !ok || ranks.Covers(freeCard) {
			continue
		}
		for taker := PileStart; taker < PileEnd; taker++ {
			pileCard, ok := g.CardAt(taker)
			if !ok {
				continue
			}
			if IsTableau(pileCard, freeCard) {
				if !g.tryMove(giver, taker, yield) {
					return false
				}
			}
		}
	}
	return true
}

func (g *Game) movesToCell(yield func(Move) bool) bool {
	taker, ok := g.EmptyCell()
	if !ok {
		return true
	}
	for giver := PileStart; giver < PileEnd; giver++ {
		if len(g.desk[giver]) > 0 {
			if !g.tryMove(giver, taker, yield) {
				return false
			}
		}
	}
	return true
}

func (g *Game) movesToPile(yield func(Move) bool) bool {
	taker, ok := g.EmptyPile()
	if !ok {
		return true
	}
	// Moving the last card of a cascade to another empty cascade is a
	// no-op, so piles need at least two cards.
	for giver := PileStart; giver < PileEnd; giver++ {
		if len(g.desk[giver]) > 1 {
			if !g.tryMove(giver, taker, yield) {
				return false
			}
		}
	}
	for giver := CellStart; giver < CellEnd; giver++ {
		if len(g.desk[giver]) > 0 {
			if !g.tryMove(giver, taker, yield) {
				return false
			}
		}
	}
	return true
}

// MovesToBase yields legal moves of play-spot top cards to their
// foundations. Like all move sequences, it is lazy and restartable:
// breaking after the first element is the existence check.
func (g *Game) MovesToBase() iter.Seq[Move] {
	return func(yield func(Move) bool) { g.movesToBase(yield) }
}

// MovesToTableau yields legal alternating-color descending moves onto
// cascade top cards, including safe moves back from foundations.
func (g *Game) MovesToTableau() iter.Seq[Move] {
	return func(yield func(Move) bool) { g.movesToTableau(yield) }
}

// MovesToCell yields moves of cascade top cards to the first empty cell.
func (g *Game) MovesToCell() iter.Seq[Move] {
	return func(yield func(Move) bool) { g.movesToCell(yield) }
}

// MovesToPile yields moves to the first empty cascade.
func (g *Game) MovesToPile() iter.Seq[Move] {
	return func(yield func(Move) bool) { g.movesToPile(yield) }
}

// Moves yields every legal move in fixed priority order: to foundation,
// to tableau, to free cell, to empty cascade.
func (g *Game) Moves() iter.Seq[Move] {
	return func(yield func(Move) bool) {
		_ = g.movesToBase(yield) &&
			g.movesToTableau(yield) &&
			g.movesToCell(yield) &&
			g.movesToPile(yield)
	}
}

// AllMoves collects every legal move. The moves are only valid until the
// next desk mutation.
func (g *Game) AllMoves() []Move {
	var moves []Move
	for mv := range g.Moves() {
		moves = append(moves, mv)
	}
	return moves
}

func hasAny(seq iter.Seq[Move]) bool {
	for range seq {
		return true
	}
	return false
}

func (g *Game) HasMoveToBase() bool {
	return hasAny(g.MovesToBase())
}

func (g *Game) HasMoveToTableau() bool {
	return hasAny(g.MovesToTableau())
}

func (g *Game) HasMoveToCell() bool {
	return hasAny(g.MovesToCell())
}

func (g *Game) HasMoveToPile() bool {
	return hasAny(g.MovesToPile())
}

// HasNextMove reports whether any legal move exists. Cheapest producers
// are probed first.
func (g *Game) HasNextMove() bool {
	return g.HasMoveToCell() || g.HasMoveToPile() || g.HasMoveToBase() || g.HasMoveToTableau()
}

// String renders the desk: cells and foundations on top, cascades below.
func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteByte('|')

	for i := CellStart; i < CellEnd; i++ {
		switch len(g.desk[i]) {
		case 0:
			sb.WriteString("  ")
		case 1:
			sb.WriteString(g.desk[i][0].String())
		default:
			sb.WriteString("XX")
		}
		sb.WriteByte('|')
	}

	for i := BaseStart; i < BaseEnd; i++ {
		if n := len(g.desk[i]); n == 0 {
			sb.WriteString("  ")
		} else {
			sb.WriteString(g.desk[i][n-1].String())
		}
		sb.WriteByte('|')
	}

	sb.WriteByte('\n')
	for i := 0; i <= 3*(CellNum+BaseNum); i++ {
		sb.WriteByte('-')
	}

	depth := 0
	for i := PileStart; i < PileEnd; i++ {
		depth = max(depth, len(g.desk[i]))
	}

	for row := 0; row < depth; row++ {
		sb.WriteString("\n|")
		for i := PileStart; i < PileEnd; i++ {
			if len(g.desk[i]) > row {
				sb.WriteString(g.desk[i][row].String())
			} else {
				sb.WriteString("  ")
			}
			sb.WriteByte('|')
		}
	}

	return sb.String()
}
