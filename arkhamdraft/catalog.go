// Package arkhamdraft compiles a selection of Arkham card packs into a
// single card-list document consumable by a third-party drafting tool.
package arkhamdraft

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

var logger = log.New(io.Discard, "", log.LstdFlags)

// SetGlobalLogger enables trace output of selection and printing
// decisions, mostly useful for debugging.
func SetGlobalLogger(userLogger *log.Logger) {
	logger = userLogger
}

var ErrCatalogUnavailable = errors.New("catalog source unavailable")
var ErrEmptySelection = errors.New("no packs selected and no explicit includes")
var ErrUnknownCard = errors.New("unknown card name")

// CatalogSource supplies the packs and cards a Catalog is built from.
// Implementations own all I/O; the compiler never fetches anything.
type CatalogSource interface {
	Packs() ([]arkhamdb.Pack, error)
	Cards() ([]arkhamdb.Card, error)
}

// Catalog is an immutable, indexed view of the card pool for the
// duration of one compilation.
type Catalog struct {
	packs     []arkhamdb.Pack
	cards     []arkhamdb.Card
	packCodes map[string]*arkhamdb.Pack
	packNames map[string]*arkhamdb.Pack
	cardCodes map[string]*arkhamdb.Card
	byPack    map[string][]*arkhamdb.Card
	printings map[string][]*arkhamdb.Card
}

func NewCatalog(packs []arkhamdb.Pack, cards []arkhamdb.Card) *Catalog {
	c := &Catalog{
		packs:     packs,
		cards:     cards,
		packCodes: map[string]*arkhamdb.Pack{},
		packNames: map[string]*arkhamdb.Pack{},
		cardCodes: map[string]*arkhamdb.Card{},
		byPack:    map[string][]*arkhamdb.Card{},
		printings: map[string][]*arkhamdb.Card{},
	}

	for i := range c.packs {
		pack := &c.packs[i]
		c.packCodes[pack.Code] = pack
		c.packNames[Normalize(pack.Name)] = pack
	}

	for i := range c.cards {
		card := &c.cards[i]
		c.cardCodes[card.Code] = card
		c.byPack[card.PackCode] = append(c.byPack[card.PackCode], card)
		norm := Normalize(card.Name)
		c.printings[norm] = append(c.printings[norm], card)
	}

	return c
}

// LoadCatalog builds a Catalog from a source, refusing to compile when
// the source cannot supply its data.
func LoadCatalog(src CatalogSource) (*Catalog, error) {
	packs, err := src.Packs()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	cards, err := src.Cards()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if len(packs) == 0 {
		return nil, fmt.Errorf("%w: no packs", ErrCatalogUnavailable)
	}
	return NewCatalog(packs, cards), nil
}

// Pack looks up a pack by code.
func (c *Catalog) Pack(code string) *arkhamdb.Pack {
	return c.packCodes[code]
}

// PackByName looks up a pack by display name, case-insensitively.
func (c *Catalog) PackByName(name string) *arkhamdb.Pack {
	return c.packNames[Normalize(name)]
}

// Card looks up a card by code.
func (c *Catalog) Card(code string) *arkhamdb.Card {
	return c.cardCodes[code]
}

// CardsInPack returns every card printed in the given pack.
func (c *Catalog) CardsInPack(packCode string) []*arkhamdb.Card {
	return c.byPack[packCode]
}

// Printings returns every printing sharing the given display name.
func (c *Catalog) Printings(name string) []*arkhamdb.Card {
	return c.printings[Normalize(name)]
}
