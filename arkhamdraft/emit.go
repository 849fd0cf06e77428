package arkhamdraft

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BucketEntry is one "<quantity> <name> (<set>) <collector-number>"
// line of the output document.
type BucketEntry struct {
	Quantity int
	Name     string
	Set      string
	Number   string
}

func (e BucketEntry) String() string {
	return fmt.Sprintf("%d %s (%s) %s", e.Quantity, e.Name, e.Set, e.Number)
}

// Document is the compiled card list, ready to be serialized for the
// drafting tool.
type Document struct {
	CustomCards   []*OutputCard
	Investigators []BucketEntry
	Weaknesses    []BucketEntry
	Players       []BucketEntry
	PlayerSlots   int
}

// The slots of the repeatable draft layout, in declaration order.
type slotCounts struct {
	Investigator int `json:"Investigator"`
	Weakness     int `json:"Weakness"`
	Playercards  int `json:"Playercards"`
}

type layout struct {
	Weight int        `json:"weight"`
	Slots  slotCounts `json:"slots"`
}

type settings struct {
	Name    string            `json:"name"`
	Layouts map[string]layout `json:"layouts"`
}

// Marshal serializes the document into the flat, section-delimited
// format consumed by the drafting tool.
func (doc *Document) Marshal() (string, error) {
	var sb strings.Builder

	customCards := doc.CustomCards
	if customCards == nil {
		customCards = []*OutputCard{}
	}
	pool, err := json.MarshalIndent(customCards, "", "  ")
	if err != nil {
		return "", err
	}
	sb.WriteString("[CustomCards]\n")
	sb.Write(pool)
	sb.WriteString("\n")

	conf, err := json.MarshalIndent(settings{
		Name: "Arkham Draft",
		Layouts: map[string]layout{
			"default": {
				Weight: 1,
				Slots: slotCounts{
					Investigator: 1,
					Weakness:     1,
					Playercards:  doc.PlayerSlots,
				},
			},
		},
	}, "", "  ")
	if err != nil {
		return "", err
	}
	sb.WriteString("[Settings]\n")
	sb.Write(conf)
	sb.WriteString("\n")

	sb.WriteString("[Investigator]\n")
	for _, entry := range sortedEntries(doc.Investigators) {
		sb.WriteString(entry.String())
		sb.WriteString("\n")
	}

	sb.WriteString("[Playercards]\n")
	for _, entry := range sortedEntries(doc.Weaknesses) {
		sb.WriteString(entry.String())
		sb.WriteString("\n")
	}
	for _, entry := range sortedEntries(doc.Players) {
		sb.WriteString(entry.String())
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// sortedEntries orders bucket lines by name, then set, then number.
func sortedEntries(entries []BucketEntry) []BucketEntry {
	out := make([]BucketEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Number < out[j].Number
	})
	return out
}
