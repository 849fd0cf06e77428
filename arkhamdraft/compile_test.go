package arkhamdraft

import (
	"strings"
	"testing"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

func TestCompileCanonicalInvestigator(t *testing.T) {
	coreGuardian := testCard("01001", "Guardian", "core", "investigator", 1)
	rcoreGuardian := testCard("90001", "Guardian", "rcore", "investigator", 1)

	catalog := NewCatalog(
		[]arkhamdb.Pack{
			testPack("core", "Core Set", 1, 1),
			testPack("rcore", "Revised Core Set", 2, 1),
		},
		[]arkhamdb.Card{coreGuardian, rcoreGuardian},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set", "Revised Core Set"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if result.Summary.Investigators != 1 {
		t.Fatalf("FAIL: expected exactly one investigator entry, got %d", result.Summary.Investigators)
	}
	if !strings.Contains(result.Document, "1 Guardian (AHRCORE) 1\n") {
		t.Errorf("FAIL: expected the revised core printing in the document:\n%s", result.Document)
	}
	if strings.Contains(result.Document, "(AHCORE) ") {
		t.Errorf("FAIL: the core printing must not be emitted")
	}
}

func TestCompileRequiredCardFromUnselectedPack(t *testing.T) {
	investigator := testCard("01001", "Roland Banks", "core", "investigator", 1)
	investigator.DeckRequirements = &arkhamdb.DeckRequirements{
		Card: map[string]map[string]string{
			"02006": {"02006": "Occult Text"},
		},
	}
	required := testCard("02006", "Occult Text", "dwl", "asset", 6)

	catalog := NewCatalog(
		[]arkhamdb.Pack{
			testPack("core", "Core Set", 1, 1),
			testPack("dwl", "The Dunwich Legacy", 2, 1),
		},
		[]arkhamdb.Card{investigator, required},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	var investigatorCard *OutputCard
	var requiredCard *OutputCard
	for _, card := range result.Pool {
		switch card.Name {
		case "Roland Banks":
			investigatorCard = card
		case "Occult Text":
			requiredCard = card
		}
	}
	if requiredCard == nil {
		t.Fatalf("FAIL: the required card from the unselected pack must be in the pool")
	}
	if investigatorCard == nil || len(investigatorCard.RelatedCards) != 1 ||
		investigatorCard.RelatedCards[0] != "Occult Text" {
		t.Errorf("FAIL: the investigator must relate to its required card")
	}
}

func TestCompileExplicitInclude(t *testing.T) {
	knife := testCard("01020", "Knife", "core", "asset", 20)
	knife.Quantity = 2

	catalog := NewCatalog(
		[]arkhamdb.Pack{
			testPack("core", "Core Set", 1, 1),
			testPack("dwl", "The Dunwich Legacy", 2, 1),
		},
		[]arkhamdb.Card{
			knife,
			testCard("02010", "Rope", "dwl", "asset", 10),
		},
	)

	// The include quantity multiplies the per-pack quantity. The pack
	// selection multiplier applies only to pack membership lines, so
	// selecting dwl at x3 has no bearing on the included Knife.
	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames:       []string{"The Dunwich Legacy"},
		PackMultipliers: map[string]int{"The Dunwich Legacy": 3},
		IncludeText:     "2 Knife",
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if !strings.Contains(result.Document, "4 Knife (AHCORE) 20\n") {
		t.Errorf("FAIL: expected include quantity 2*2=4:\n%s", result.Document)
	}
	if !strings.Contains(result.Document, "3 Rope (AHDWL) 10\n") {
		t.Errorf("FAIL: expected pack multiplier 3 on Rope:\n%s", result.Document)
	}
}

func TestCompileExcludeEverywhere(t *testing.T) {
	investigator := testCard("01001", "Roland Banks", "core", "investigator", 1)
	weakness := testCard("01096", "Paranoia", "core", "treachery", 96)
	weakness.SubtypeCode = arkhamdb.SubtypeBasicWeakness
	knife := testCard("01020", "Knife", "core", "asset", 20)

	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		[]arkhamdb.Card{investigator, weakness, knife},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames:   []string{"Core Set"},
		ExcludeText: "KNIFE",
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if strings.Contains(result.Document, "Knife") {
		t.Errorf("FAIL: an excluded name must not show up anywhere:\n%s", result.Document)
	}
	for _, card := range result.Pool {
		if card.Name == "Knife" {
			t.Errorf("FAIL: an excluded name must not be in the custom pool")
		}
	}
}

func TestCompilePlayerCardPerPrinting(t *testing.T) {
	coreKnife := testCard("01020", "Knife", "core", "asset", 20)
	dwlKnife := testCard("02010", "Knife", "dwl", "asset", 10)

	catalog := NewCatalog(
		[]arkhamdb.Pack{
			testPack("core", "Core Set", 1, 1),
			testPack("dwl", "The Dunwich Legacy", 2, 1),
		},
		[]arkhamdb.Card{coreKnife, dwlKnife},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set", "The Dunwich Legacy"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	// No canonicalization across printings for player cards
	if !strings.Contains(result.Document, "1 Knife (AHCORE) 20\n") ||
		!strings.Contains(result.Document, "1 Knife (AHDWL) 10\n") {
		t.Errorf("FAIL: expected one line per printing:\n%s", result.Document)
	}
	if result.Summary.PlayerCards != 2 {
		t.Errorf("FAIL: expected 2 player lines, got %d", result.Summary.PlayerCards)
	}
}

func TestCompileSectionOrder(t *testing.T) {
	investigator := testCard("01001", "Roland Banks", "core", "investigator", 1)
	knife := testCard("01020", "Knife", "core", "asset", 20)

	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		[]arkhamdb.Card{investigator, knife},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames:   []string{"Core Set"},
		PlayerSlots: 7,
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	sections := []string{"[CustomCards]", "[Settings]", "[Investigator]", "[Playercards]"}
	last := -1
	for _, section := range sections {
		pos := strings.Index(result.Document, section)
		if pos < 0 {
			t.Fatalf("FAIL: missing section %s", section)
		}
		if pos < last {
			t.Errorf("FAIL: section %s out of order", section)
		}
		last = pos
	}

	if !strings.Contains(result.Document, `"Playercards": 7`) {
		t.Errorf("FAIL: the layout must declare the requested player slots")
	}
	if !strings.Contains(result.Document, `"Investigator": 1`) ||
		!strings.Contains(result.Document, `"Weakness": 1`) {
		t.Errorf("FAIL: the layout must declare investigator and weakness slots")
	}
}

func TestCompileEmptySelection(t *testing.T) {
	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		nil,
	)

	_, err := NewCompiler().Compile(catalog, SelectionRequest{})
	if err != ErrEmptySelection {
		t.Errorf("FAIL: expected ErrEmptySelection, got %v", err)
	}
}

func TestCompileNilCatalog(t *testing.T) {
	_, err := NewCompiler().Compile(nil, SelectionRequest{PackNames: []string{"Core Set"}})
	if err != ErrCatalogUnavailable {
		t.Errorf("FAIL: expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestCompileBondedSatellite(t *testing.T) {
	host := testCard("01030", "Hallowed Mirror", "core", "asset", 30)
	host.BondedCards = []arkhamdb.BondedCard{{Count: 3, Code: "01031"}}
	bonded := testCard("01031", "Soothing Melody", "core", "event", 31)
	bonded.BondedTo = "01030"

	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		[]arkhamdb.Card{host, bonded},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if strings.Contains(result.Document, "Soothing Melody (") {
		t.Errorf("FAIL: a bonded card must never be a bucket line:\n%s", result.Document)
	}
	found := false
	for _, card := range result.Pool {
		if card.Name == "Soothing Melody" {
			found = true
		}
	}
	if !found {
		t.Errorf("FAIL: a bonded card must be in the custom pool once its host is selected")
	}
	if result.Summary.CustomCards != 2 {
		t.Errorf("FAIL: expected host and satellite in the pool, got %d", result.Summary.CustomCards)
	}
}

func TestCompileMissingTypeCode(t *testing.T) {
	// Remote catalog records may omit type_code entirely
	bare := testCard("01050", "Unmarked Card", "core", "", 50)

	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		[]arkhamdb.Card{bare},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if result.Summary.PlayerCards != 1 {
		t.Fatalf("FAIL: expected the card in the player bucket, got %d", result.Summary.PlayerCards)
	}
	if result.Pool[0].Type != "" {
		t.Errorf("FAIL: an absent type code must emit an empty label, got %q", result.Pool[0].Type)
	}
}

func TestCompileVariableCost(t *testing.T) {
	x := arkhamdb.CostX
	drain := testCard("01057", "Storm of Spirits", "core", "event", 57)
	drain.Cost = &x

	catalog := NewCatalog(
		[]arkhamdb.Pack{testPack("core", "Core Set", 1, 1)},
		[]arkhamdb.Card{drain},
	)

	result, err := NewCompiler().Compile(catalog, SelectionRequest{
		PackNames: []string{"Core Set"},
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if result.Pool[0].ManaCost != "{X}" {
		t.Errorf("FAIL: the variable-cost sentinel must emit X, got %q", result.Pool[0].ManaCost)
	}
}
