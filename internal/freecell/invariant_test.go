package freecell

import (
	"testing"

	"github.com/constf1/freecell-solver/internal/deck"
)

func TestInvariantDependsOnDealOnly(t *testing.T) {
	gameA := NewGame()
	gameA.Deal(deck.Deal(90))

	gameB := NewGame()
	gameB.Deal(deck.Deal(80))
	gameB.Deal(deck.Deal(90))

	keyA0 := gameA.Invariant()
	keyB0 := gameB.Invariant()
	if keyA0 != keyB0 {
		t.Fatal("re-dealing the same seed should produce the same key")
	}

	gameA.MoveCardsAuto()
	keyA1 := gameA.Invariant()
	if keyA1 == keyB0 || keyA1 == keyA0 {
		t.Fatal("auto-play should change the key")
	}

	gameB.MoveCardsAuto()
	keyB1 := gameB.Invariant()
	if keyA1 != keyB1 {
		t.Fatal("the same moves should produce the same key")
	}
	if keyB0 == keyB1 {
		t.Fatal("auto-play should change the key")
	}

	gameA.Rewind()
	if gameA.Invariant() != keyA0 {
		t.Fatal("rewind should restore the original key")
	}
}

func TestInvariantIgnoresCellChoice(t *testing.T) {
	gameA := NewGame()
	gameA.Deal(deck.Deal(173205951))
	gameA.MoveCard(PileStart+0, CellStart+0)

	gameB := NewGame()
	gameB.Deal(deck.Deal(173205951))
	gameB.MoveCard(PileStart+0, CellStart+3)

	if gameA.Invariant() != gameB.Invariant() {
		t.Fatal("the key should not depend on which free cell holds the card")
	}
}

func TestInvariantIgnoresPileOrder(t *testing.T) {
	game := NewGame()
	game.Deal(deck.Deal(173205951))
	want := game.Invariant()

	game.desk[PileStart+0], game.desk[PileStart+5] =
		game.desk[PileStart+5], game.desk[PileStart+0]

	if game.Invariant() != want {
		t.Fatal("the key should not depend on cascade positions")
	}
}

func TestInvariantSeesCardOrder(t *testing.T) {
	game := NewGame()
	game.Deal(deck.Deal(173205951))
	want := game.Invariant()

	pile := game.desk[PileStart+2]
	pile[0], pile[1] = pile[1], pile[0]

	if game.Invariant() == want {
		t.Fatal("reordering cards within a cascade should change the key")
	}
}

func TestInvariantSeesFoundations(t *testing.T) {
	game := NewGame()
	game.Deal(deck.Deal(173205951))
	want := game.Invariant()

	if game.MoveCardsAuto() == 0 {
		t.Fatal("this deal should auto-play at least one card")
	}
	if game.Invariant() == want {
		t.Fatal("promoting a card should change the key")
	}
}
