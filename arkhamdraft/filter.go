package arkhamdraft

import (
	"sort"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

type buckets struct {
	investigators []*arkhamdb.Card
	weaknesses    []*arkhamdb.Card
	players       []*arkhamdb.Card
}

// candidates returns every card in scope for the selection: members of
// the selected packs first, in catalog pack order, then the required
// cards pulled in from unselected packs, in code order.
func (c *Catalog) candidates(sel *Selection) []*arkhamdb.Card {
	var cards []*arkhamdb.Card
	for i := range c.packs {
		if !sel.PackCodes[c.packs[i].Code] {
			continue
		}
		cards = append(cards, c.byPack[c.packs[i].Code]...)
	}

	codes := make([]string, 0, len(sel.Required))
	for code := range sel.Required {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		card := c.Card(code)
		if card != nil {
			cards = append(cards, card)
		}
	}

	return cards
}

// classify routes every surviving candidate into exactly one bucket.
// Upgraded printings, bonded satellites, reserved back faces, and
// excluded names never reach a bucket.
func (c *Catalog) classify(sel *Selection) *buckets {
	candidates := c.candidates(sel)

	// Codes claimed as a back face by another candidate. A "b"-suffixed
	// code nobody links to is a front-facing card in its own right.
	linkedBacks := map[string]bool{}
	for _, card := range candidates {
		if card.LinkedToCode != "" {
			linkedBacks[card.LinkedToCode] = true
		}
	}

	b := &buckets{}
	for _, card := range candidates {
		if card.XP > 0 {
			continue
		}
		if card.IsBonded() {
			continue
		}
		if card.HasBackSuffix() && linkedBacks[card.Code] {
			continue
		}
		if sel.excluded(card.Name) {
			continue
		}

		switch {
		case card.IsInvestigator():
			b.investigators = append(b.investigators, card)
		case card.IsBasicWeakness():
			b.weaknesses = append(b.weaknesses, card)
		default:
			if card.HasRestrictions() {
				continue
			}
			b.players = append(b.players, card)
		}
	}

	return b
}
