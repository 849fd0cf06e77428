package arkhamdraft

import (
	"fmt"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

// linker materializes cards into the custom pool, resolving back faces
// and related-card sets. Satellites referenced by a materialized card
// are registered as first-class pool entries of their own.
type linker struct {
	catalog *Catalog
	sel     *Selection

	pool  []*OutputCard
	index map[string]bool

	// Bonded display names shared by more than one code: these get the
	// owning code appended so each stays independently addressable.
	collide map[string]bool
}

func newLinker(c *Catalog, sel *Selection) *linker {
	l := &linker{
		catalog: c,
		sel:     sel,
		index:   map[string]bool{},
		collide: map[string]bool{},
	}

	firstCode := map[string]string{}
	for i := range c.cards {
		card := &c.cards[i]
		if !card.IsBonded() {
			continue
		}
		norm := Normalize(card.Name)
		code, found := firstCode[norm]
		if !found {
			firstCode[norm] = card.Code
			continue
		}
		if code != card.Code {
			l.collide[norm] = true
		}
	}

	return l
}

// displayName is the name a card is emitted under.
func (l *linker) displayName(card *arkhamdb.Card) string {
	if card.IsBonded() && l.collide[Normalize(card.Name)] {
		return fmt.Sprintf("%s (%s)", card.Name, card.Code)
	}
	return card.Name
}

// add materializes a card into the custom pool, following its
// cross-references, and returns the emitted display name. Adding a card
// already in the pool is a no-op. The relation graph is acyclic in the
// source catalog, which bounds the recursion.
func (l *linker) add(card *arkhamdb.Card) string {
	name := l.displayName(card)
	if l.index[name] {
		return name
	}
	l.index[name] = true

	out := &OutputCard{
		Name:            name,
		ManaCost:        costLabel(card),
		Type:            typeLabel(card),
		Colors:          colorsFor(card),
		ImageURIs:       imageURIs(card.ImageSrc),
		Set:             setLabel(card.PackCode),
		CollectorNumber: card.CollectorNumber(),
	}
	l.pool = append(l.pool, out)

	out.Back = l.backFace(card)
	if out.Back != nil {
		out.Layout = layoutTransform
	}

	var refs []string
	if card.IsInvestigator() {
		refs = append(refs, card.RequiredCodes()...)
	}
	refs = append(refs, card.BondedCodes()...)

	for _, code := range refs {
		ref := l.catalog.Card(code)
		if ref == nil {
			// Reference outside the catalog, keep the primary card
			continue
		}
		if l.sel.excluded(ref.Name) {
			continue
		}
		out.RelatedCards = append(out.RelatedCards, l.add(ref))
	}
	if len(out.RelatedCards) > 0 {
		out.DraftEffects = append(out.DraftEffects, DraftEffect{
			Type:  draftEffectAddCards,
			Cards: out.RelatedCards,
		})
	}

	return name
}

// backFace resolves the card's back: an explicit linked-back card
// object wins over the same-record back image, which gets a synthesized
// "<name> - back" record instead.
func (l *linker) backFace(card *arkhamdb.Card) *OutputFace {
	if card.LinkedToCode != "" {
		back := l.catalog.Card(card.LinkedToCode)
		if back != nil {
			return &OutputFace{
				Name:      back.Name,
				Type:      typeLabel(back),
				ImageURIs: imageURIs(back.ImageSrc),
				Layout:    layoutTransform,
			}
		}
	}

	if card.BackImageSrc != "" {
		return &OutputFace{
			Name:      card.Name + " - back",
			Type:      typeLabel(card),
			ImageURIs: imageURIs(card.BackImageSrc),
			Layout:    layoutTransform,
		}
	}

	return nil
}
