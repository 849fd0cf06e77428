package arkhamdraft

import (
	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

const (
	coreCode        = "core"
	revisedCoreCode = "rcore"
)

// normalizedSetCode folds the original core set into the revised core,
// so that both count as the same logical set for de-duplication.
func normalizedSetCode(packCode string) string {
	if packCode == coreCode {
		return revisedCoreCode
	}
	return packCode
}

// betterPrinting picks the canonical printing between two candidates
// sharing a display name. The revised core always outranks the original
// core, otherwise the strictly later (cycle_position, position) pair
// wins, and any remaining tie keeps the first seen.
func (c *Catalog) betterPrinting(a, b *arkhamdb.Card) *arkhamdb.Card {
	if a.PackCode == revisedCoreCode && b.PackCode == coreCode {
		return a
	}
	if b.PackCode == revisedCoreCode && a.PackCode == coreCode {
		return b
	}

	packA := c.Pack(a.PackCode)
	packB := c.Pack(b.PackCode)
	if packA == nil || packB == nil {
		if packA == nil && packB != nil {
			return b
		}
		return a
	}

	if packB.CyclePosition > packA.CyclePosition {
		return b
	}
	if packB.CyclePosition == packA.CyclePosition && packB.Position > packA.Position {
		return b
	}
	return a
}

// canonicalize reduces a bucket to a single printing per (name,
// normalized set) pair, preserving the first-seen order of pairs.
// Running it twice over its own output is a no-op.
func (c *Catalog) canonicalize(cards []*arkhamdb.Card) []*arkhamdb.Card {
	type slotKey struct {
		name string
		set  string
	}

	var order []slotKey
	chosen := map[slotKey]*arkhamdb.Card{}
	for _, card := range cards {
		key := slotKey{Normalize(card.Name), normalizedSetCode(card.PackCode)}
		current, found := chosen[key]
		if !found {
			chosen[key] = card
			order = append(order, key)
			continue
		}
		chosen[key] = c.betterPrinting(current, card)
		if chosen[key] != current {
			logger.Println("Preferring printing", chosen[key].Code, "over", current.Code, "for", card.Name)
		}
	}

	out := make([]*arkhamdb.Card, 0, len(order))
	for _, key := range order {
		out = append(out, chosen[key])
	}
	return out
}
