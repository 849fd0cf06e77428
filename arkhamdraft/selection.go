package arkhamdraft

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

// SelectionRequest captures the user's pack choices for one compilation.
type SelectionRequest struct {
	// Display names of the chosen packs, unknown names are dropped
	PackNames []string

	// Optional per-pack quantity multipliers, keyed by pack name
	PackMultipliers map[string]int

	// Free-text "<quantity> <name>" lines to force into the pool
	IncludeText string

	// Free-text card names to keep out of the pool, one per line
	ExcludeText string

	// Number of player-card slots declared in the output layout
	PlayerSlots int
}

// IncludeEntry is one parsed line of the explicit include list.
type IncludeEntry struct {
	Quantity int
	Name     string
}

// Selection is a resolved SelectionRequest: concrete pack codes plus the
// transitive set of card codes pulled in by cross-references.
type Selection struct {
	PackCodes   map[string]bool
	Multipliers map[string]int
	Required    map[string]bool
	Includes    []IncludeEntry
	Excludes    map[string]bool
}

func (sel *Selection) multiplier(packCode string) int {
	mult, found := sel.Multipliers[packCode]
	if !found || mult < 1 {
		return 1
	}
	return mult
}

func (sel *Selection) excluded(name string) bool {
	return sel.Excludes[Normalize(name)]
}

// The name is everything after the quantity, taken as one token so its
// interior spacing survives even when the name starts with a number.
type quantityLine struct {
	Quantity int    `parser:"@Int"`
	Name     string `parser:"@Rest"`
}

var lineParser = participle.MustBuild[quantityLine](
	participle.Lexer(lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Int", Pattern: `\d+`, Action: lexer.Push("Name")},
		},
		"Name": {
			{Name: "whitespace", Pattern: `[ \t]+`},
			{Name: "Rest", Pattern: `[^\n]+`},
		},
	})),
)

// ParseIncludeText parses "<quantity> <name>" lines, one per line.
// Lines that do not fit the grammar are skipped.
func ParseIncludeText(text string) []IncludeEntry {
	var entries []IncludeEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parsed, err := lineParser.ParseString("", line)
		if err != nil || parsed.Quantity < 1 {
			continue
		}
		entries = append(entries, IncludeEntry{
			Quantity: parsed.Quantity,
			Name:     parsed.Name,
		})
	}
	return entries
}

// ParseExcludeText collects the excluded names, one per line. Every
// line is taken whole as a name, there is no quantity prefix here.
func ParseExcludeText(text string) map[string]bool {
	excludes := map[string]bool{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		excludes[Normalize(line)] = true
	}
	return excludes
}

// ResolveSelection maps the request's pack names to codes and collects
// the transitive required set: deck requirements of selected
// investigators and bonded satellites of any selected card. Required
// cards may belong to unselected packs and are still compiled.
func (c *Catalog) ResolveSelection(req SelectionRequest) (*Selection, error) {
	sel := &Selection{
		PackCodes:   map[string]bool{},
		Multipliers: map[string]int{},
		Required:    map[string]bool{},
		Includes:    ParseIncludeText(req.IncludeText),
		Excludes:    ParseExcludeText(req.ExcludeText),
	}

	for _, name := range req.PackNames {
		pack := c.PackByName(name)
		if pack == nil {
			logger.Println("Unknown pack name, dropping:", name)
			continue
		}
		sel.PackCodes[pack.Code] = true
	}
	for name, mult := range req.PackMultipliers {
		pack := c.PackByName(name)
		if pack == nil {
			continue
		}
		sel.Multipliers[pack.Code] = mult
	}

	if len(sel.PackCodes) == 0 && len(sel.Includes) == 0 {
		return nil, ErrEmptySelection
	}

	// Walk the cross-reference graph starting from the selected packs.
	// References resolving outside the selection are recorded so their
	// cards can still be compiled.
	var queue []*arkhamdb.Card
	visited := map[string]bool{}
	for code := range sel.PackCodes {
		for _, card := range c.CardsInPack(code) {
			queue = append(queue, card)
			visited[card.Code] = true
		}
	}
	for len(queue) > 0 {
		card := queue[0]
		queue = queue[1:]

		var refs []string
		if card.IsInvestigator() {
			refs = append(refs, card.RequiredCodes()...)
		}
		refs = append(refs, card.BondedCodes()...)

		for _, code := range refs {
			if visited[code] {
				continue
			}
			visited[code] = true
			ref := c.Card(code)
			if ref == nil {
				logger.Println("Dangling reference, skipping:", code)
				continue
			}
			if !sel.PackCodes[ref.PackCode] {
				sel.Required[code] = true
			}
			queue = append(queue, ref)
		}
	}

	return sel, nil
}
