package ingest

import (
	"context"
	"database/sql"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/etamarw/hebforms/pkg/db"
	"github.com/etamarw/hebforms/pkg/fetch"
)

const nounPage = `<!DOCTYPE html>
<html><body>
<h2>מְנוֹרָה</h2>
<p>Noun – feminine</p>
<p>Root: נ - ו - ר</p>
<h3>Meaning</h3>
<p>lamp</p>
<table class="conjugation-table">
<tr><th>Absolute state</th>
<td id="s"><div class="vf"><span class="menukad">מְנוֹרָה</span><div class="transcription">meno<b>ra</b></div></div></td>
<td id="p"><div class="vf"><span class="menukad">מְנוֹרוֹת</span><div class="transcription">meno<b>rot</b></div></div></td>
</tr>
</table>
</body></html>`

const headerlessPage = `<!DOCTYPE html>
<html><body><h2>מָחָר</h2><p>Adverb</p></body></html>`

func ingestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/dict/menora", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, nounPage)
	})
	mux.HandleFunc("/dict/machar", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, headerlessPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func ingestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	if err := db.Init(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestIngesterRun(t *testing.T) {
	srv := ingestServer(t)
	conn := ingestDB(t)

	ig := NewIngester(conn, fetch.NewClient())
	ig.Logger = log.New(io.Discard, "", 0)

	var mu sync.Mutex
	progress := 0
	ig.OnProgress = func(done, total int) {
		mu.Lock()
		if done > progress {
			progress = done
		}
		mu.Unlock()
	}

	urls := []string{
		srv.URL + "/dict/menora",
		srv.URL + "/dict/machar",
		srv.URL + "/dict/missing",
	}
	stored, err := ig.Run(context.Background(), urls)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stored != 1 {
		t.Fatalf("stored %d pages, want 1", stored)
	}
	if progress != len(urls) {
		t.Errorf("progress reached %d, want %d", progress, len(urls))
	}

	res, err := db.GetParadigmByURL(conn, urls[0])
	if err != nil {
		t.Fatalf("load stored paradigm: %v", err)
	}
	if res.Noun == nil || res.Noun.Singular.Transliteration != "menora" {
		t.Errorf("stored paradigm: %+v", res)
	}

	pages, err := db.ListPages(conn)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Headword != "מנורה" {
		t.Errorf("pages: %+v", pages)
	}
}

func TestIngesterRunEmpty(t *testing.T) {
	stored, err := NewIngester(ingestDB(t), fetch.NewClient()).Run(context.Background(), nil)
	if err != nil || stored != 0 {
		t.Fatalf("empty run: got %d, %v", stored, err)
	}
}
