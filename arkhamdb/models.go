// Package arkhamdb provides models and an API client for the ArkhamDB
// public card catalog.
package arkhamdb

import (
	"sort"
	"strconv"
	"strings"
)

// Pack represents a release group of cards, ordered by cycle and position.
type Pack struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	CyclePosition int    `json:"cycle_position"`
	Position      int    `json:"position"`
	Available     string `json:"available,omitempty"`
	Known         int    `json:"known,omitempty"`
	Total         int    `json:"total,omitempty"`
}

// DeckRequirements lists the cards an investigator must start with.
// The keys of Card are the required card codes, each mapping to the set
// of codes that can satisfy the requirement.
type DeckRequirements struct {
	Size   int                          `json:"size,omitempty"`
	Card   map[string]map[string]string `json:"card,omitempty"`
	Random []RandomRequirement          `json:"random,omitempty"`
}

// RandomRequirement describes a random deckbuilding requirement, such as
// the basic weakness every deck starts with.
type RandomRequirement struct {
	Target string `json:"target"`
	Value  string `json:"value"`
}

// Restrictions limits which decks a card may be included in.
type Restrictions struct {
	Investigator map[string]string `json:"investigator,omitempty"`
	Trait        []string          `json:"trait,omitempty"`
}

// BondedCard is a reference to a satellite card that always accompanies
// its host.
type BondedCard struct {
	Count int    `json:"count"`
	Code  string `json:"code"`
}

// Card is a single printing of a card as served by the catalog.
type Card struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	RealName    string `json:"real_name,omitempty"`
	PackCode    string `json:"pack_code"`
	TypeCode    string `json:"type_code"`
	SubtypeCode string `json:"subtype_code,omitempty"`
	FactionCode string `json:"faction_code,omitempty"`

	// Collector number within the pack
	Position int `json:"position,omitempty"`

	// Cost is nil for cards without a cost, and CostX for variable costs
	Cost *int `json:"cost,omitempty"`

	// Experience level, zero or absent for base cards
	XP int `json:"xp,omitempty"`

	// Copies per pack
	Quantity int `json:"quantity,omitempty"`

	IsUnique bool   `json:"is_unique,omitempty"`
	Traits   string `json:"traits,omitempty"`
	Text     string `json:"text,omitempty"`

	Restrictions     *Restrictions     `json:"restrictions,omitempty"`
	DeckRequirements *DeckRequirements `json:"deck_requirements,omitempty"`

	BondedTo    string       `json:"bonded_to,omitempty"`
	BondedCards []BondedCard `json:"bonded_cards,omitempty"`

	// Code of the card representing this card's back face
	LinkedToCode string `json:"linked_to_code,omitempty"`
	LinkedToName string `json:"linked_to_name,omitempty"`

	ImageSrc     string `json:"imagesrc,omitempty"`
	BackImageSrc string `json:"backimagesrc,omitempty"`
}

// CostX is the sentinel used by the catalog for variable "X" costs.
const CostX = -2

// BackSuffix marks the code of a card record describing the back face of
// another card.
const BackSuffix = "b"

const (
	TypeInvestigator = "investigator"
	TypeAsset        = "asset"
	TypeEvent        = "event"
	TypeSkill        = "skill"
	TypeTreachery    = "treachery"

	SubtypeWeakness      = "weakness"
	SubtypeBasicWeakness = "basicweakness"
)

func (c *Card) IsInvestigator() bool {
	return c.TypeCode == TypeInvestigator
}

func (c *Card) IsBasicWeakness() bool {
	return c.SubtypeCode == SubtypeBasicWeakness
}

// IsBonded reports whether the card is a satellite of another card.
func (c *Card) IsBonded() bool {
	return c.BondedTo != ""
}

// HasBackSuffix reports whether the card code follows the back-face
// naming convention. Such a card is only a back face if another card
// links to it, otherwise it is a card in its own right.
func (c *Card) HasBackSuffix() bool {
	return strings.HasSuffix(c.Code, BackSuffix)
}

// HasRestrictions reports whether the card carries any deckbuilding
// restriction.
func (c *Card) HasRestrictions() bool {
	return c.Restrictions != nil &&
		(len(c.Restrictions.Investigator) > 0 || len(c.Restrictions.Trait) > 0)
}

// RequiredCodes returns the card codes referenced by the investigator's
// deck requirements, in stable order.
func (c *Card) RequiredCodes() []string {
	if c.DeckRequirements == nil {
		return nil
	}
	codes := make([]string, 0, len(c.DeckRequirements.Card))
	for code := range c.DeckRequirements.Card {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// BondedCodes returns the card codes of the card's bonded satellites.
func (c *Card) BondedCodes() []string {
	codes := make([]string, 0, len(c.BondedCards))
	for _, bonded := range c.BondedCards {
		codes = append(codes, bonded.Code)
	}
	return codes
}

// CollectorNumber returns the position of the card within its pack,
// falling back to the numeric tail of the card code for records that do
// not carry a position. Fully-numeric codes follow the upstream
// convention of a two-digit pack prefix plus a three-digit position, so
// only the last three digits count.
func (c *Card) CollectorNumber() string {
	if c.Position > 0 {
		return strconv.Itoa(c.Position)
	}
	code := strings.TrimSuffix(c.Code, BackSuffix)
	i := len(code)
	for i > 0 && code[i-1] >= '0' && code[i-1] <= '9' {
		i--
	}
	tail := code[i:]
	if i == 0 && len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}
	return strings.TrimLeft(tail, "0")
}
