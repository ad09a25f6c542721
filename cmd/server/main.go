// Command server exposes the extractor over HTTP: a small submission form
// and a JSON API.
//
// Endpoints:
//
//	GET  /                    submission form
//	POST /api/extract           body: {"url":"...","pos":"..."}, fetch, extract and store
//	GET  /api/paradigm?url=...  stored paradigm for a page
package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/cors"

	"github.com/etamarw/hebforms/pkg/db"
	"github.com/etamarw/hebforms/pkg/export"
	"github.com/etamarw/hebforms/pkg/fetch"
	"github.com/etamarw/hebforms/pkg/paradigm"
	"github.com/etamarw/hebforms/pkg/render"
	"github.com/etamarw/hebforms/pkg/translit"
)

type config struct {
	Addr           string   `env:"HEBFORMS_ADDR" env-default:":8080"`
	DBPath         string   `env:"HEBFORMS_DB" env-default:"hebforms.db"`
	OutDir         string   `env:"HEBFORMS_OUT" env-default:"pages"`
	KhToCh         bool     `env:"HEBFORMS_KH_TO_CH" env-default:"false"`
	TzToC          bool     `env:"HEBFORMS_TZ_TO_C" env-default:"false"`
	AllowedOrigins []string `env:"HEBFORMS_ORIGINS" env-default:"*"`
}

type app struct {
	conn    *sql.DB
	fetcher *fetch.Client
	opts    translit.Options
	outDir  string
}

type errorResponse struct {
	Error string `json:"error"`
}

type extractRequest struct {
	URL string `json:"url"`
	POS string `json:"pos"`
}

type extractResponse struct {
	Result    paradigm.Result `json:"result"`
	SavedPath string          `json:"saved_path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>hebforms</title></head>
<body>
<h1>hebforms</h1>
<form method="post" action="/api/extract">
<label>Page URL: <input type="url" name="url" size="60" required></label>
<button type="submit">Extract</button>
</form>
</body>
</html>
`

func handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	}
}

func (a *app) handleExtract() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}

		var req extractRequest
		switch r.Header.Get("Content-Type") {
		case "application/json":
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "body must be JSON with a 'url' field")
				return
			}
		default:
			req.URL = r.FormValue("url")
			req.POS = r.FormValue("pos")
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "missing 'url'")
			return
		}

		doc, err := a.fetcher.FetchDocument(r.Context(), req.URL)
		if err != nil {
			var se *fetch.StatusError
			if errors.As(err, &se) {
				writeError(w, http.StatusBadGateway, se.Error())
				return
			}
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}

		res, err := paradigm.Extract(doc, req.URL, req.POS)
		if err != nil {
			if errors.Is(err, paradigm.ErrPartOfSpeech) {
				writeError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		res = res.Normalized(a.opts)

		resp := extractResponse{Result: res}
		if a.outDir != "" {
			path, err := export.WriteHTML(a.outDir, req.URL, render.HTML(res))
			if err != nil {
				log.Printf("save %s: %v", req.URL, err)
			} else {
				resp.SavedPath = path
			}
		}
		if _, err := db.SaveResult(a.conn, req.URL, res); err != nil {
			log.Printf("persist %s: %v", req.URL, err)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (a *app) handleParadigm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		pageURL := r.URL.Query().Get("url")
		if pageURL == "" {
			writeError(w, http.StatusBadRequest, "missing 'url' query parameter")
			return
		}
		res, err := db.GetParadigmByURL(a.conn, pageURL)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "no paradigm stored for that url")
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func main() {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("read config: %v", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer conn.Close()
	if err := db.Init(conn); err != nil {
		log.Fatalf("initialize database: %v", err)
	}

	a := &app{
		conn:    conn,
		fetcher: fetch.NewClient(),
		opts:    translit.Options{KhToCh: cfg.KhToCh, TzToC: cfg.TzToC},
		outDir:  cfg.OutDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex())
	mux.HandleFunc("/api/extract", a.handleExtract())
	mux.HandleFunc("/api/paradigm", a.handleParadigm())

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, c.Handler(mux)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
