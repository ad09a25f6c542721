package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etamarw/hebforms/pkg/paradigm"
)

// Executor lets store functions accept either *sql.DB or *sql.Tx.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// CreateOrGetPage upserts the page row for pageURL and returns its id.
// Headword and pos overwrite earlier values when non-empty.
func CreateOrGetPage(ex Executor, pageURL, headword, pos string) (int64, error) {
	trimmed := strings.TrimSpace(pageURL)
	if trimmed == "" {
		return 0, fmt.Errorf("page url must be non-empty")
	}

	var id int64
	query := `INSERT INTO pages (url, headword, pos)
			  VALUES (?, ?, ?)
			  ON CONFLICT(url)
			  DO UPDATE SET
			    headword = CASE WHEN excluded.headword != '' THEN excluded.headword ELSE pages.headword END,
				pos = CASE WHEN excluded.pos != '' THEN excluded.pos ELSE pages.pos END
			  RETURNING id`
	if err := ex.QueryRow(query, trimmed, headword, pos).Scan(&id); err != nil {
		return 0, fmt.Errorf("upsert page: %w", err)
	}
	return id, nil
}

// SaveParadigm stores the extraction result for a page, replacing any
// earlier record.
func SaveParadigm(ex Executor, pageID int64, res paradigm.Result) error {
	if pageID <= 0 {
		return fmt.Errorf("pageID must be positive")
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal paradigm: %w", err)
	}
	_, err = ex.Exec(`INSERT INTO paradigms (page_id, pos, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(page_id) DO UPDATE SET
		  pos = excluded.pos,
		  payload = excluded.payload,
		  updated_at = excluded.updated_at`,
		pageID, res.POS, string(payload))
	if err != nil {
		return fmt.Errorf("upsert paradigm: %w", err)
	}
	return nil
}

// SaveResult upserts the page row and its paradigm in one call and returns
// the page id.
func SaveResult(ex Executor, pageURL string, res paradigm.Result) (int64, error) {
	pageID, err := CreateOrGetPage(ex, pageURL, res.Headword().Unpointed, res.POS)
	if err != nil {
		return 0, err
	}
	if err := SaveParadigm(ex, pageID, res); err != nil {
		return 0, err
	}
	return pageID, nil
}

// GetParadigmByURL loads the stored extraction result for a page URL.
// Returns sql.ErrNoRows (wrapped) when nothing is stored.
func GetParadigmByURL(ex Executor, pageURL string) (paradigm.Result, error) {
	var payload string
	err := ex.QueryRow(`SELECT pr.payload FROM paradigms pr
		JOIN pages pg ON pg.id = pr.page_id
		WHERE pg.url = ?`, pageURL).Scan(&payload)
	if err != nil {
		return paradigm.Result{}, fmt.Errorf("load paradigm for %s: %w", pageURL, err)
	}
	var res paradigm.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return paradigm.Result{}, fmt.Errorf("unmarshal paradigm for %s: %w", pageURL, err)
	}
	return res, nil
}

// ListPages returns every processed page, newest first.
func ListPages(ex Executor) ([]Page, error) {
	rows, err := ex.Query(`SELECT id, url, headword, pos, added_at FROM pages ORDER BY added_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.ID, &p.URL, &p.Headword, &p.POS, &p.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
