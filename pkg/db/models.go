package db

import "time"

// Page is a provenance record for one processed dictionary page.
type Page struct {
	ID       int64
	URL      string
	Headword string
	POS      string
	AddedAt  time.Time
}
