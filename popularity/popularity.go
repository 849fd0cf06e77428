// Package popularity derives card and investigator usage statistics
// from published decklists, to help weigh what goes into a draft pool.
package popularity

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdraft"
)

// Decklist is one published deck: an investigator plus card slots.
type Decklist struct {
	ID               string
	Name             string
	InvestigatorCode string
	InvestigatorName string
	PreviousDeck     string
	NextDeck         string
	Slots            map[string]int
	SideSlots        map[string]int
}

// DeckStats carries the community reception counters of a decklist.
type DeckStats struct {
	DecklistID string
	Likes      int
	Favorites  int
	Comments   int
}

// LoadDecklists reads decklists from CSV. Expected columns: id, name,
// investigator_code, investigator_name, previous_deck, next_deck,
// slots, sideSlots, where the slot columns hold JSON objects mapping
// card codes to copies. Rows with unparseable slots are kept with the
// slots they do have.
func LoadDecklists(r io.Reader) ([]Decklist, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	var decklists []Decklist
	for _, row := range rows {
		deck := Decklist{
			ID:               field(header, row, "id"),
			Name:             field(header, row, "name"),
			InvestigatorCode: field(header, row, "investigator_code"),
			InvestigatorName: field(header, row, "investigator_name"),
			PreviousDeck:     field(header, row, "previous_deck"),
			NextDeck:         field(header, row, "next_deck"),
		}
		deck.Slots = parseSlots(field(header, row, "slots"))
		deck.SideSlots = parseSlots(field(header, row, "sideSlots"))
		decklists = append(decklists, deck)
	}
	return decklists, nil
}

// LoadDeckStats reads decklist stats from CSV, keyed by decklist_id.
func LoadDeckStats(r io.Reader) (map[string]DeckStats, error) {
	rows, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	out := map[string]DeckStats{}
	for _, row := range rows {
		id := field(header, row, "decklist_id")
		if id == "" {
			continue
		}
		out[id] = DeckStats{
			DecklistID: id,
			Likes:      atoi(field(header, row, "likes")),
			Favorites:  atoi(field(header, row, "favorites")),
			Comments:   atoi(field(header, row, "comments")),
		}
	}
	return out, nil
}

// FilterLowValue drops decklists below the likes threshold, decks that
// are part of a campaign chain, and exact slot duplicates.
func FilterLowValue(decklists []Decklist, deckStats map[string]DeckStats, minLikes int) []Decklist {
	seen := map[string]bool{}
	var kept []Decklist
	for _, deck := range decklists {
		if deckStats[deck.ID].Likes < minLikes {
			continue
		}
		if deck.PreviousDeck != "" || deck.NextDeck != "" {
			continue
		}
		key := slotsKey(deck.Slots)
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, deck)
	}
	return kept
}

// InvestigatorOccurrence counts how many kept decks run an investigator.
type InvestigatorOccurrence struct {
	Name     string
	Code     string
	PackCode string
	Decks    int
}

// InvestigatorOccurrences tallies decks per investigator, most played
// first.
func InvestigatorOccurrences(decklists []Decklist, catalog *arkhamdraft.Catalog) []InvestigatorOccurrence {
	counts := map[string]*InvestigatorOccurrence{}
	var order []string
	for _, deck := range decklists {
		if deck.InvestigatorName == "" || deck.InvestigatorCode == "" {
			continue
		}
		occ, found := counts[deck.InvestigatorName]
		if !found {
			occ = &InvestigatorOccurrence{
				Name: deck.InvestigatorName,
				Code: deck.InvestigatorCode,
			}
			if card := catalog.Card(deck.InvestigatorCode); card != nil {
				occ.PackCode = card.PackCode
			}
			counts[deck.InvestigatorName] = occ
			order = append(order, deck.InvestigatorName)
		}
		occ.Decks++
	}

	out := make([]InvestigatorOccurrence, 0, len(order))
	for _, name := range order {
		out = append(out, *counts[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Decks > out[j].Decks
	})
	return out
}

// CardPopularity summarizes how often a player card shows up across the
// kept decks.
type CardPopularity struct {
	Name            string
	FactionCode     string
	XP              int
	MainDecks       int
	MainOccurrences int
	SideDecks       int
	SideOccurrences int

	// Copies per deck that includes the card
	MeanCopies   float64
	MedianCopies float64
}

// CardPopularities tallies slot usage per card name. Weaknesses,
// investigator cards, and investigator-restricted signatures are left
// out, matching what a draft pool would actually offer.
func CardPopularities(decklists []Decklist, catalog *arkhamdraft.Catalog) []CardPopularity {
	type tally struct {
		pop    CardPopularity
		copies []float64
	}
	tallies := map[string]*tally{}
	var order []string

	for _, deck := range decklists {
		for code, copies := range deck.Slots {
			card := catalog.Card(code)
			if card == nil {
				continue
			}
			if card.IsInvestigator() || card.IsBasicWeakness() ||
				card.SubtypeCode == "weakness" || card.HasRestrictions() {
				continue
			}
			entry, found := tallies[card.Name]
			if !found {
				entry = &tally{pop: CardPopularity{
					Name:        card.Name,
					FactionCode: card.FactionCode,
					XP:          card.XP,
				}}
				tallies[card.Name] = entry
				order = append(order, card.Name)
			}
			entry.pop.MainDecks++
			entry.pop.MainOccurrences += copies
			entry.copies = append(entry.copies, float64(copies))
		}
		for code, copies := range deck.SideSlots {
			card := catalog.Card(code)
			if card == nil {
				continue
			}
			entry, found := tallies[card.Name]
			if !found {
				continue
			}
			entry.pop.SideDecks++
			entry.pop.SideOccurrences += copies
		}
	}

	out := make([]CardPopularity, 0, len(order))
	for _, name := range order {
		entry := tallies[name]
		if len(entry.copies) > 0 {
			entry.pop.MeanCopies, _ = stats.Mean(entry.copies)
			entry.pop.MedianCopies, _ = stats.Median(entry.copies)
		}
		out = append(out, entry.pop)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti := out[i].MainOccurrences + out[i].SideOccurrences
		tj := out[j].MainOccurrences + out[j].SideOccurrences
		return ti > tj
	})
	return out
}

// WriteInvestigatorCSV writes investigator occurrences in the same
// shape the evaluation inputs use downstream.
func WriteInvestigatorCSV(w io.Writer, occurrences []InvestigatorOccurrence) error {
	cw := csv.NewWriter(w)
	err := cw.Write([]string{"investigator_name", "occurrences", "pack_code"})
	if err != nil {
		return err
	}
	for _, occ := range occurrences {
		err = cw.Write([]string{occ.Name, strconv.Itoa(occ.Decks), occ.PackCode})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCardCSV writes card popularity rows.
func WriteCardCSV(w io.Writer, cards []CardPopularity) error {
	cw := csv.NewWriter(w)
	err := cw.Write([]string{
		"name", "faction_code", "xp",
		"main_decks", "main_occurrences",
		"side_decks", "side_occurrences",
		"mean_copies", "median_copies",
	})
	if err != nil {
		return err
	}
	for _, card := range cards {
		err = cw.Write([]string{
			card.Name,
			card.FactionCode,
			strconv.Itoa(card.XP),
			strconv.Itoa(card.MainDecks),
			strconv.Itoa(card.MainOccurrences),
			strconv.Itoa(card.SideDecks),
			strconv.Itoa(card.SideOccurrences),
			fmt.Sprintf("%.2f", card.MeanCopies),
			fmt.Sprintf("%.2f", card.MedianCopies),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}
	header := map[string]int{}
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return records[1:], header, nil
}

func field(header map[string]int, row []string, name string) string {
	i, found := header[name]
	if !found || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseSlots(raw string) map[string]int {
	if raw == "" {
		return nil
	}
	var slots map[string]int
	err := json.Unmarshal([]byte(raw), &slots)
	if err != nil {
		return nil
	}
	return slots
}

// slotsKey builds a canonical representation of a deck's slots, used to
// spot duplicate submissions.
func slotsKey(slots map[string]int) string {
	if len(slots) == 0 {
		return ""
	}
	codes := make([]string, 0, len(slots))
	for code := range slots {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	var sb strings.Builder
	for _, code := range codes {
		fmt.Fprintf(&sb, "%s:%d;", code, slots[code])
	}
	return sb.String()
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
