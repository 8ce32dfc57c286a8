package freecell

import (
	"testing"

	"github.com/constf1/freecell-solver/internal/deck"
)

func TestSpotZones(t *testing.T) {
	for spot := 0; spot < DeskSize; spot++ {
		base, cell, pile := IsBase(spot), IsCell(spot), IsPile(spot)
		if base && cell || base && pile || cell && pile {
			t.Fatalf("spot %d belongs to more than one zone", spot)
		}
		if !base && !cell && !pile {
			t.Fatalf("spot %d belongs to no zone", spot)
		}
		if IsPlay(spot) != (cell || pile) {
			t.Fatalf("spot %d: play zone should be cells and piles", spot)
		}
	}
}

func TestSpotName(t *testing.T) {
	cases := []struct {
		spot int
		want string
	}{
		{BaseStart, "base 1"},
		{BaseEnd - 1, "base 4"},
		{CellStart, "cell 1"},
		{PileStart, "pile 1"},
		{PileEnd - 1, "pile 8"},
		{DeskSize, "unknown 16"},
	}
	for _, c := range cases {
		if got := SpotName(c.spot); got != c.want {
			t.Fatalf("SpotName(%d) = %q, want %q", c.spot, got, c.want)
		}
	}
}

func TestSpotHexCompactOrder(t *testing.T) {
	cases := []struct {
		spot int
		want string
	}{
		{PileStart, "0"},
		{PileStart + 7, "7"},
		{BaseStart, "8"},
		{BaseStart + 3, "b"},
		{CellStart, "c"},
		{CellStart + 3, "f"},
	}
	for _, c := range cases {
		if got := SpotHex(c.spot); got != c.want {
			t.Fatalf("SpotHex(%d) = %q, want %q", c.spot, got, c.want)
		}
	}
}

func TestIsTableau(t *testing.T) {
	a := deck.NewCard(1, 2) // 2♣, black
	b := deck.NewCard(2, 2) // 3♣, black
	c := deck.NewCard(2, 3) // 3♥, red

	if IsTableau(a, b) {
		t.Fatal("ranks must descend")
	}
	if IsTableau(b, a) {
		t.Fatal("colors must alternate")
	}
	if !IsTableau(c, a) {
		t.Fatal("a red 3 should take a black 2")
	}
	if IsTableau(a, c) {
		t.Fatal("a black 2 should not take a red 3")
	}
}
