package arkhamdraft

import (
	"testing"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
)

func classifyFixture() ([]arkhamdb.Pack, []arkhamdb.Card) {
	packs := []arkhamdb.Pack{
		testPack("core", "Core Set", 1, 1),
		testPack("dwl", "The Dunwich Legacy", 2, 1),
	}

	investigator := testCard("01001", "Roland Banks", "core", "investigator", 1)
	investigator.LinkedToCode = "01001b"
	investigatorBack := testCard("01001b", "Roland Banks", "core", "investigator", 1)

	upgraded := testCard("01025", "Machete", "core", "asset", 25)
	upgraded.XP = 2

	signature := testCard("01006", "Roland's .38 Special", "core", "asset", 6)
	signature.Restrictions = &arkhamdb.Restrictions{
		Investigator: map[string]string{"01001": "01001"},
	}

	bonded := testCard("01031", "Soothing Melody", "core", "event", 31)
	bonded.BondedTo = "01030"

	host := testCard("01030", "Hallowed Mirror", "core", "asset", 30)
	host.BondedCards = []arkhamdb.BondedCard{{Count: 3, Code: "01031"}}

	// A "b"-suffixed card nothing links to is a card in its own right
	standalone := testCard("01040b", "Lost Memories", "core", "treachery", 40)

	weakness := testCard("01096", "Paranoia", "core", "treachery", 96)
	weakness.SubtypeCode = arkhamdb.SubtypeBasicWeakness

	knife := testCard("01020", "Knife", "core", "asset", 20)

	cards := []arkhamdb.Card{
		investigator, investigatorBack, upgraded, signature,
		bonded, host, standalone, weakness, knife,
	}
	return packs, cards
}

func classify(t *testing.T, excludeText string) *buckets {
	t.Helper()
	packs, cards := classifyFixture()
	catalog := NewCatalog(packs, cards)
	sel, err := catalog.ResolveSelection(SelectionRequest{
		PackNames:   []string{"Core Set"},
		ExcludeText: excludeText,
	})
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	return catalog.classify(sel)
}

func bucketCodes(cards []*arkhamdb.Card) map[string]bool {
	codes := map[string]bool{}
	for _, card := range cards {
		codes[card.Code] = true
	}
	return codes
}

func TestClassify(t *testing.T) {
	b := classify(t, "")

	investigators := bucketCodes(b.investigators)
	if !investigators["01001"] || len(investigators) != 1 {
		t.Errorf("FAIL: expected only 01001 in the investigator bucket, got %v", investigators)
	}
	if investigators["01001b"] {
		t.Errorf("FAIL: a linked back face must not be a standalone entry")
	}

	weaknesses := bucketCodes(b.weaknesses)
	if !weaknesses["01096"] || len(weaknesses) != 1 {
		t.Errorf("FAIL: expected only 01096 in the weakness bucket, got %v", weaknesses)
	}

	players := bucketCodes(b.players)
	if players["01025"] {
		t.Errorf("FAIL: an upgraded printing must never reach a bucket")
	}
	if players["01031"] {
		t.Errorf("FAIL: a bonded card must never be a standalone entry")
	}
	if players["01006"] {
		t.Errorf("FAIL: a restricted card must stay out of the player bucket")
	}
	if !players["01040b"] {
		t.Errorf("FAIL: an unlinked b-suffixed card is a card in its own right")
	}
	if !players["01020"] || !players["01030"] {
		t.Errorf("FAIL: expected Knife and Hallowed Mirror in the player bucket, got %v", players)
	}
}

func TestClassifyExcludes(t *testing.T) {
	b := classify(t, "KNIFE\nparanoia\nRoland Banks")

	if len(b.investigators) != 0 {
		t.Errorf("FAIL: excluded investigator still present")
	}
	if len(b.weaknesses) != 0 {
		t.Errorf("FAIL: excluded weakness still present")
	}
	players := bucketCodes(b.players)
	if players["01020"] {
		t.Errorf("FAIL: exclusion must be case-insensitive")
	}
}
