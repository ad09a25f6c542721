// Command hebforms extracts the inflection paradigm from a dictionary page
// and renders it as a table. It can process one URL or a file of URLs, save
// the rendered HTML next to its source name, and persist results in SQLite.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/etamarw/hebforms/pkg/db"
	"github.com/etamarw/hebforms/pkg/export"
	"github.com/etamarw/hebforms/pkg/fetch"
	"github.com/etamarw/hebforms/pkg/ingest"
	"github.com/etamarw/hebforms/pkg/paradigm"
	"github.com/etamarw/hebforms/pkg/render"
	"github.com/etamarw/hebforms/pkg/translit"
)

func main() {
	urlFlag := flag.String("url", "", "dictionary page URL to process")
	urlsFlag := flag.String("urls", "", "file with one page URL per line (bulk mode)")
	posFlag := flag.String("pos", "", "part of speech override (noun, adjective, verb)")
	dbFlag := flag.String("db", "", "path to SQLite database (empty disables persistence)")
	outFlag := flag.String("out", "", "directory for rendered HTML (empty disables saving)")
	khFlag := flag.Bool("kh-to-ch", false, "rewrite kh to ch in transliterations")
	tzFlag := flag.Bool("tz-to-c", false, "rewrite tz to c in transliterations")
	workersFlag := flag.Int("workers", 4, "concurrent fetches in bulk mode")
	flag.Parse()

	if *urlFlag == "" && *urlsFlag == "" {
		log.Fatal("please provide -url or -urls")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := translit.Options{KhToCh: *khFlag, TzToC: *tzFlag}

	var conn *sql.DB
	if *dbFlag != "" {
		var err error
		conn, err = sql.Open("sqlite3", *dbFlag)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer conn.Close()
		if err := db.Init(conn); err != nil {
			log.Fatalf("initialize database: %v", err)
		}
	}

	fetcher := fetch.NewClient()

	if *urlsFlag != "" {
		if conn == nil {
			log.Fatal("bulk mode requires -db")
		}
		urls, err := readURLList(*urlsFlag)
		if err != nil {
			log.Fatalf("read url list: %v", err)
		}
		ig := ingest.NewIngester(conn, fetcher)
		ig.Options = opts
		ig.Workers = *workersFlag
		ig.Logger = log.Default()
		ig.OnProgress = func(done, total int) {
			fmt.Printf("\rprocessed %d/%d", done, total)
		}
		stored, err := ig.Run(ctx, urls)
		fmt.Println()
		if err != nil {
			log.Fatalf("bulk run: %v", err)
		}
		color.Green("stored %d of %d pages", stored, len(urls))
		return
	}

	fmt.Printf("fetching %s...\n", *urlFlag)
	doc, err := fetcher.FetchDocument(ctx, *urlFlag)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}

	res, err := paradigm.Extract(doc, *urlFlag, *posFlag)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}
	res = res.Normalized(opts)

	fmt.Print(render.Text(res))

	if *outFlag != "" {
		path, err := export.WriteHTML(*outFlag, *urlFlag, render.HTML(res))
		if err != nil {
			log.Fatalf("save: %v", err)
		}
		color.Green("saved %s", path)
	}
	if conn != nil {
		if _, err := db.SaveResult(conn, *urlFlag, res); err != nil {
			log.Fatalf("persist: %v", err)
		}
		color.Green("stored %s (%s) in %s", res.Headword().Unpointed, res.POS, *dbFlag)
	}
}

// readURLList reads one URL per line, skipping blanks and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
