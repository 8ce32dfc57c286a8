// Package freecell implements the FreeCell game model and a best-first
// branch-and-bound solver over it.
//
// Layout: one standard 52-card deck, four open foundations built up by
// suit, four open free cells holding one card each, and eight cascades the
// cards are dealt into. Tableaux are built down by alternating colors. The
// game is won when every card reaches its foundation.
package freecell

import (
	"fmt"

	"github.com/constf1/freecell-solver/internal/deck"
)

// The desk is a fixed 16-slot layout. A spot's zone is derived purely from
// its numeric range: foundations first, then free cells, then cascades.
const (
	BaseNum = 4 // foundation piles
	CellNum = 4 // open cells
	PileNum = 8 // cascades

	DeskSize = PileNum + CellNum + BaseNum

	BaseStart = 0
	BaseEnd   = BaseStart + BaseNum

	CellStart = BaseEnd
	CellEnd   = CellStart + CellNum

	PileStart = CellEnd
	PileEnd   = PileStart + PileNum
)

// IsPlay reports whether the spot is a free cell or a cascade.
func IsPlay(spot int) bool {
	return spot >= BaseEnd && spot < DeskSize
}

func IsBase(spot int) bool {
	return spot >= BaseStart && spot < BaseEnd
}

func IsCell(spot int) bool {
	return spot >= CellStart && spot < CellEnd
}

func IsPile(spot int) bool {
	return spot >= PileStart && spot < PileEnd
}

// SpotName returns a human readable spot name, e.g. "pile 3" or "cell 1".
func SpotName(spot int) string {
	switch {
	case IsBase(spot):
		return fmt.Sprintf("base %d", 1+spot-BaseStart)
	case IsPile(spot):
		return fmt.Sprintf("pile %d", 1+spot-PileStart)
	case IsCell(spot):
		return fmt.Sprintf("cell %d", 1+spot-CellStart)
	}
	return fmt.Sprintf("unknown %d", spot)
}

// SpotHex returns the spot's compact index as one hexadecimal digit.
// The compact order maps the 16 spots to 0-15 as [8 cascades][4
// foundations][4 free cells]; it is the move encoding of the companion
// web app's replay links.
func SpotHex(spot int) string {
	switch {
	case IsPile(spot):
		spot = spot - PileStart
	case IsBase(spot):
		spot = spot - BaseStart + PileNum
	case IsCell(spot):
		spot = spot - CellStart + PileNum + BaseNum
	}
	return fmt.Sprintf("%x", spot)
}

// IsTableau reports whether b can be placed on a to extend a tableau.
// Tableaux are built down by alternating colors.
func IsTableau(a, b deck.Card) bool {
	return a.Rank() == b.Rank()+1 && a.Color() != b.Color()
}
