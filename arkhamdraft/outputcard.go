package arkhamdraft

import (
	"fmt"
	"strings"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

// OutputCard is a fully materialized card definition emitted into the
// document's custom card block. Field names and shapes are dictated by
// the downstream drafting tool.
type OutputCard struct {
	Name            string            `json:"name"`
	ManaCost        string            `json:"mana_cost"`
	Type            string            `json:"type"`
	Colors          []string          `json:"colors,omitempty"`
	ImageURIs       map[string]string `json:"image_uris,omitempty"`
	Set             string            `json:"set,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	Layout          string            `json:"layout,omitempty"`
	Back            *OutputFace       `json:"back,omitempty"`
	RelatedCards    []string          `json:"related_cards,omitempty"`
	DraftEffects    []DraftEffect     `json:"draft_effects,omitempty"`
}

// OutputFace is the nested back-face sub-record of a double-sided card.
type OutputFace struct {
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	ImageURIs map[string]string `json:"image_uris,omitempty"`
	Layout    string            `json:"layout,omitempty"`
}

// DraftEffect is a side effect granted when the card is picked, such as
// automatically adding its satellites to the drafter's pool.
type DraftEffect struct {
	Type  string   `json:"type"`
	Cards []string `json:"cards,omitempty"`
}

const draftEffectAddCards = "AddCards"

// layoutTransform is the layout hint carried by double-sided cards.
const layoutTransform = "transform"

// setLabel renders the set label of a pack code for bucket lines and
// custom card records: "AH" plus the upper-cased code, no separator.
func setLabel(packCode string) string {
	return "AH" + strings.ToUpper(packCode)
}

var typeLabels = map[string]string{
	arkhamdb.TypeInvestigator: "Investigator",
	arkhamdb.TypeAsset:        "Asset",
	arkhamdb.TypeEvent:        "Event",
	arkhamdb.TypeSkill:        "Skill",
	arkhamdb.TypeTreachery:    "Treachery",
}

func typeLabel(card *arkhamdb.Card) string {
	label, found := typeLabels[card.TypeCode]
	if found {
		return label
	}
	if card.TypeCode == "" {
		return ""
	}
	return strings.ToUpper(card.TypeCode[:1]) + card.TypeCode[1:]
}

// The downstream tool understands five colors, so each playable class
// maps onto one of them. Neutral cards stay colorless.
var factionColors = map[string]string{
	"guardian": "W",
	"seeker":   "U",
	"mystic":   "B",
	"survivor": "R",
	"rogue":    "G",
}

func colorsFor(card *arkhamdb.Card) []string {
	color, found := factionColors[card.FactionCode]
	if !found {
		return nil
	}
	return []string{color}
}

// costLabel renders the card cost, mapping the variable-cost sentinel
// to the X marker.
func costLabel(card *arkhamdb.Card) string {
	if card.Cost == nil {
		return ""
	}
	if *card.Cost == arkhamdb.CostX {
		return "{X}"
	}
	return fmt.Sprintf("{%d}", *card.Cost)
}

func imageURIs(src string) map[string]string {
	if src == "" {
		return nil
	}
	if !strings.HasPrefix(src, "http") {
		src = arkhamdb.BaseURL + src
	}
	return map[string]string{"en": src}
}
