package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/scizorman/go-ndjson"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
	"github.com/arkhamdraft/go-arkhamdraft/arkhamdraft"
)

var GlobalLogCallback arkhamdraft.LogCallbackFunc = log.Printf

func run() int {
	packsOpt := flag.String("packs", "", "Comma-separated pack names to compile")
	multipliersOpt := flag.String("multipliers", "", "Comma-separated <pack name>=<count> pairs")
	includeOpt := flag.String("include", "", "File with '<quantity> <name>' lines to force in")
	excludeOpt := flag.String("exclude", "", "File with card names to keep out, one per line")
	slotsOpt := flag.Int("slots", 0, "Player-card slots declared in the layout")
	outputOpt := flag.String("output", "draft.txt", "Where to write the compiled document")
	poolOpt := flag.String("pool", "", "Optional ndjson dump of the custom card pool")
	catalogOpt := flag.String("catalog", "", "Offline catalog JSON file instead of the live API")
	cacheOpt := flag.String("cache-dir", cacheDirDefault(), "Directory for catalog cache files")
	ttlOpt := flag.Int("cache-ttl", 24, "Cache time-to-live in hours")
	refreshOpt := flag.Bool("refresh", false, "Drop the cache and refetch before compiling")
	flag.Parse()

	if *packsOpt == "" && *includeOpt == "" {
		log.Println("No packs or includes requested, nothing to do")
		flag.Usage()
		return 1
	}

	catalog, err := loadCatalog(*catalogOpt, *cacheOpt, *ttlOpt, *refreshOpt)
	if err != nil {
		log.Println(err)
		return 1
	}

	req := arkhamdraft.SelectionRequest{
		PackNames:   splitTrimmed(*packsOpt),
		PlayerSlots: *slotsOpt,
	}
	req.PackMultipliers, err = parseMultipliers(*multipliersOpt)
	if err != nil {
		log.Println(err)
		return 1
	}
	req.IncludeText, err = readOptional(*includeOpt)
	if err != nil {
		log.Println(err)
		return 1
	}
	req.ExcludeText, err = readOptional(*excludeOpt)
	if err != nil {
		log.Println(err)
		return 1
	}

	compiler := arkhamdraft.NewCompiler()
	compiler.LogCallback = GlobalLogCallback

	result, err := compiler.Compile(catalog, req)
	if err != nil {
		log.Println(err)
		return 1
	}

	err = os.WriteFile(*outputOpt, []byte(result.Document), 0644)
	if err != nil {
		log.Println(err)
		return 1
	}
	log.Printf("Wrote %s: %d custom cards, %d investigators, %d weaknesses, %d player lines",
		*outputOpt, result.Summary.CustomCards, result.Summary.Investigators,
		result.Summary.Weaknesses, result.Summary.PlayerCards)

	if *poolOpt != "" {
		data, err := ndjson.Marshal(result.Pool)
		if err != nil {
			log.Println(err)
			return 1
		}
		err = os.WriteFile(*poolOpt, data, 0644)
		if err != nil {
			log.Println(err)
			return 1
		}
		log.Printf("Wrote %s", *poolOpt)
	}

	return 0
}

func main() {
	os.Exit(run())
}

// loadCatalog builds the catalog either from an offline JSON snapshot
// or through the cached API client.
func loadCatalog(catalogFile, cacheDir string, ttlHours int, refresh bool) (*arkhamdraft.Catalog, error) {
	if catalogFile != "" {
		data, err := os.ReadFile(catalogFile)
		if err != nil {
			return nil, err
		}
		var snapshot struct {
			Packs []arkhamdb.Pack `json:"packs"`
			Cards []arkhamdb.Card `json:"cards"`
		}
		err = json.Unmarshal(data, &snapshot)
		if err != nil {
			return nil, err
		}
		return arkhamdraft.NewCatalog(snapshot.Packs, snapshot.Cards), nil
	}

	client := arkhamdb.NewCachedClient(cacheDir)
	client.LogCallback = arkhamdb.LogCallbackFunc(GlobalLogCallback)
	if ttlHours > 0 {
		client.TTL = time.Duration(ttlHours) * time.Hour
	}
	if refresh {
		err := client.Refresh()
		if err != nil {
			return nil, err
		}
	}
	return arkhamdraft.LoadCatalog(client)
}

func cacheDirDefault() string {
	dir := os.Getenv("ARKHAMDB_CACHE_DIR")
	if dir != "" {
		return dir
	}
	return "."
}

func splitTrimmed(raw string) []string {
	if raw == "" {
		return nil
	}
	fields := strings.Split(raw, ",")
	var out []string
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field != "" {
			out = append(out, field)
		}
	}
	return out
}

func parseMultipliers(raw string) (map[string]int, error) {
	if raw == "" {
		return nil, nil
	}
	out := map[string]int{}
	for _, pair := range strings.Split(raw, ",") {
		name, count, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("malformed multiplier %q, want <pack name>=<count>", pair)
		}
		mult, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("malformed multiplier %q: %v", pair, err)
		}
		out[strings.TrimSpace(name)] = mult
	}
	return out, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
