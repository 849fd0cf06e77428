// Command draftserver serves a minimal pack-selection page and returns
// the compiled draft document as a download.
package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/arkhamdraft/go-arkhamdraft/arkhamdb"
	"github.com/arkhamdraft/go-arkhamdraft/arkhamdraft"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Arkham Draft</title></head>
<body>
<h1>Arkham Draft</h1>
<form method="post" action="/draft">
{{range .Packs}}
<label><input type="checkbox" name="packs" value="{{.Name}}"> {{.Name}}</label><br>
{{end}}
<p><label>Player slots: <input type="number" name="slots" value="12" min="1"></label></p>
<p><label>Exclude (one name per line):<br><textarea name="exclude" rows="4" cols="40"></textarea></label></p>
<p><label>Include (&lt;quantity&gt; &lt;name&gt; per line):<br><textarea name="include" rows="4" cols="40"></textarea></label></p>
<button type="submit">Compile</button>
</form>
</body>
</html>`))

type server struct {
	client   *arkhamdb.CachedClient
	compiler *arkhamdraft.Compiler
}

func (srv *server) index(w http.ResponseWriter, r *http.Request) {
	packs, err := srv.client.Packs()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	err = indexTemplate.Execute(w, map[string]interface{}{
		"Packs": packs,
	})
	if err != nil {
		log.Println(err)
	}
}

func (srv *server) draft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	catalog, err := arkhamdraft.LoadCatalog(srv.client)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	slots := 0
	fmt.Sscanf(r.PostForm.Get("slots"), "%d", &slots)
	req := arkhamdraft.SelectionRequest{
		PackNames:   r.PostForm["packs"],
		IncludeText: r.PostForm.Get("include"),
		ExcludeText: r.PostForm.Get("exclude"),
		PlayerSlots: slots,
	}

	result, err := srv.compiler.Compile(catalog, req)
	if err == arkhamdraft.ErrEmptySelection {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="draft.txt"`)
	w.Write([]byte(result.Document))
}

func (srv *server) refreshCache(w http.ResponseWriter, r *http.Request) {
	err := srv.client.Refresh()
	if err != nil {
		http.Error(w, "Failed to refresh cache: "+err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Fprintln(w, "Cache refreshed")
}

func main() {
	addr := os.Getenv("DRAFTSERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	cacheDir := os.Getenv("ARKHAMDB_CACHE_DIR")
	if cacheDir == "" {
		cacheDir = "."
	}

	client := arkhamdb.NewCachedClient(cacheDir)
	client.LogCallback = log.Printf

	compiler := arkhamdraft.NewCompiler()
	compiler.LogCallback = log.Printf

	srv := &server{
		client:   client,
		compiler: compiler,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.index)
	mux.HandleFunc("/draft", srv.draft)
	mux.HandleFunc("/refresh-cache", srv.refreshCache)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	log.Println("Listening on", addr)
	log.Fatal(httpServer.ListenAndServe())
}
