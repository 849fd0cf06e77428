package arkhamdraft

import (
	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

type LogCallbackFunc func(format string, a ...interface{})

// DefaultPlayerSlots is the number of player-card slots declared in the
// layout when the request does not say otherwise.
const DefaultPlayerSlots = 12

// Summary carries the counters a caller may want to display after a
// compilation.
type Summary struct {
	CustomCards   int `json:"custom_cards"`
	Investigators int `json:"investigators"`
	Weaknesses    int `json:"weaknesses"`
	PlayerCards   int `json:"player_cards"`
}

// Result is the outcome of one compilation.
type Result struct {
	Document string
	Pool     []*OutputCard
	Summary  Summary
}

// Compiler turns a catalog and a selection into a draft document. It
// performs no I/O and holds no state across compilations, so a single
// value may serve concurrent requests as long as the catalog snapshot
// is not mutated mid-flight.
type Compiler struct {
	LogCallback LogCallbackFunc
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

func (comp *Compiler) printf(format string, a ...interface{}) {
	if comp.LogCallback != nil {
		comp.LogCallback("[DRAFT] "+format, a...)
	}
}

// hasEntry reports whether a bucket already holds an entry for the
// given (name, set) pair. Buckets with canonical printings must stay
// unique on that key.
func hasEntry(entries []BucketEntry, name, set string) bool {
	for _, entry := range entries {
		if Equals(entry.Name, name) && entry.Set == set {
			return true
		}
	}
	return false
}

func quantity(card *arkhamdb.Card) int {
	if card.Quantity < 1 {
		return 1
	}
	return card.Quantity
}

// Compile runs the full pipeline: resolve the selection, filter and
// classify, canonicalize printings, link cross-references, and emit the
// document.
func (comp *Compiler) Compile(catalog *Catalog, req SelectionRequest) (*Result, error) {
	if catalog == nil {
		return nil, ErrCatalogUnavailable
	}

	sel, err := catalog.ResolveSelection(req)
	if err != nil {
		return nil, err
	}
	comp.printf("resolved %d packs, %d required cards, %d includes",
		len(sel.PackCodes), len(sel.Required), len(sel.Includes))

	b := catalog.classify(sel)
	investigators := catalog.canonicalize(b.investigators)
	weaknesses := catalog.canonicalize(b.weaknesses)

	link := newLinker(catalog, sel)
	doc := &Document{PlayerSlots: req.PlayerSlots}
	if doc.PlayerSlots < 1 {
		doc.PlayerSlots = DefaultPlayerSlots
	}

	for _, card := range investigators {
		doc.Investigators = append(doc.Investigators, BucketEntry{
			Quantity: 1,
			Name:     link.add(card),
			Set:      setLabel(card.PackCode),
			Number:   card.CollectorNumber(),
		})
	}

	for _, card := range weaknesses {
		doc.Weaknesses = append(doc.Weaknesses, BucketEntry{
			Quantity: quantity(card) * sel.multiplier(card.PackCode),
			Name:     link.add(card),
			Set:      setLabel(card.PackCode),
			Number:   card.CollectorNumber(),
		})
	}

	// Player cards do not canonicalize across printings: quantities
	// accumulate per (name, pack, collector number), so the same card
	// may legitimately show up once per selected pack.
	type playerKey struct {
		name   string
		pack   string
		number string
	}
	var order []playerKey
	totals := map[playerKey]int{}
	for _, card := range b.players {
		key := playerKey{link.add(card), card.PackCode, card.CollectorNumber()}
		if _, found := totals[key]; !found {
			order = append(order, key)
		}
		totals[key] += quantity(card) * sel.multiplier(card.PackCode)
	}

	// Explicit includes ask for N lots of the card: the requested count
	// multiplies the per-pack quantity, and the pack selection
	// multiplier does not apply.
	for _, entry := range sel.Includes {
		printings := catalog.Printings(entry.Name)
		if len(printings) == 0 {
			comp.printf("include %q: %v", entry.Name, ErrUnknownCard)
			continue
		}
		card := printings[0]
		for _, printing := range printings[1:] {
			card = catalog.betterPrinting(card, printing)
		}
		if sel.excluded(card.Name) {
			continue
		}

		switch {
		case card.IsInvestigator():
			if hasEntry(doc.Investigators, card.Name, setLabel(card.PackCode)) {
				continue
			}
			doc.Investigators = append(doc.Investigators, BucketEntry{
				Quantity: 1,
				Name:     link.add(card),
				Set:      setLabel(card.PackCode),
				Number:   card.CollectorNumber(),
			})
		case card.IsBasicWeakness():
			if hasEntry(doc.Weaknesses, card.Name, setLabel(card.PackCode)) {
				continue
			}
			doc.Weaknesses = append(doc.Weaknesses, BucketEntry{
				Quantity: entry.Quantity * quantity(card),
				Name:     link.add(card),
				Set:      setLabel(card.PackCode),
				Number:   card.CollectorNumber(),
			})
		default:
			key := playerKey{link.add(card), card.PackCode, card.CollectorNumber()}
			if _, found := totals[key]; !found {
				order = append(order, key)
			}
			totals[key] += entry.Quantity * quantity(card)
		}
	}

	for _, key := range order {
		doc.Players = append(doc.Players, BucketEntry{
			Quantity: totals[key],
			Name:     key.name,
			Set:      setLabel(key.pack),
			Number:   key.number,
		})
	}

	doc.CustomCards = link.pool

	out, err := doc.Marshal()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Document: out,
		Pool:     link.pool,
		Summary: Summary{
			CustomCards:   len(link.pool),
			Investigators: len(doc.Investigators),
			Weaknesses:    len(doc.Weaknesses),
			PlayerCards:   len(doc.Players),
		},
	}
	comp.printf("compiled %d custom cards, %d investigators, %d weaknesses, %d player lines",
		result.Summary.CustomCards, result.Summary.Investigators,
		result.Summary.Weaknesses, result.Summary.PlayerCards)

	return result, nil
}
