package ingest

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func writerDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	if _, err := conn.Exec(`CREATE TABLE items (val TEXT NOT NULL)`); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return conn
}

func countItems(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func insertItem(val string) WriteFunc {
	return func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO items (val) VALUES (?)`, val)
		return err
	}
}

func TestBatchWriterFlushOnClose(t *testing.T) {
	conn := writerDB(t)
	bw := NewBatchWriter(conn, 100, 0)

	for i := 0; i < 7; i++ {
		if err := bw.Submit(insertItem(fmt.Sprintf("v%d", i))); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := countItems(t, conn); got != 7 {
		t.Errorf("got %d rows, want 7", got)
	}
}

func TestBatchWriterFlushOnSize(t *testing.T) {
	conn := writerDB(t)
	bw := NewBatchWriter(conn, 2, 0)
	defer bw.Close()

	bw.Submit(insertItem("a"))
	bw.Submit(insertItem("b"))

	deadline := time.Now().Add(2 * time.Second)
	for countItems(t, conn) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("size-triggered flush never committed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBatchWriterFlushOnTimer(t *testing.T) {
	conn := writerDB(t)
	bw := NewBatchWriter(conn, 100, 10*time.Millisecond)
	defer bw.Close()

	bw.Submit(insertItem("a"))

	deadline := time.Now().Add(2 * time.Second)
	for countItems(t, conn) < 1 {
		if time.Now().After(deadline) {
			t.Fatal("timer-triggered flush never committed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBatchWriterReportsWriteError(t *testing.T) {
	conn := writerDB(t)
	bw := NewBatchWriter(conn, 10, 0)

	wantErr := errors.New("boom")
	bw.Submit(func(tx *sql.Tx) error { return wantErr })
	if err := bw.Close(); !errors.Is(err, wantErr) {
		t.Fatalf("close: got %v, want the write error", err)
	}
}

func TestBatchWriterFailedBatchRollsBack(t *testing.T) {
	conn := writerDB(t)
	bw := NewBatchWriter(conn, 10, 0)

	bw.Submit(insertItem("kept back"))
	bw.Submit(func(tx *sql.Tx) error { return errors.New("boom") })
	if err := bw.Close(); err == nil {
		t.Fatal("close must surface the batch error")
	}
	if got := countItems(t, conn); got != 0 {
		t.Errorf("failed batch must roll back, found %d rows", got)
	}
}

func TestBatchWriterClosedSubmit(t *testing.T) {
	bw := NewBatchWriter(writerDB(t), 10, 0)
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := bw.Submit(insertItem("late")); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("got %v, want ErrBatchWriterClosed", err)
	}
	if err := bw.Close(); !errors.Is(err, ErrBatchWriterClosed) {
		t.Fatalf("second close: got %v, want ErrBatchWriterClosed", err)
	}
}
