package entry

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func openTestWAL(t *testing.T, dir string, segSize int64) *WAL {
	t.Helper()
	w, err := Open(Config{Dir: dir, SegmentSize: segSize})
	if err != nil {
		t.Fatalf("open wal: %v", err)
	}
	return w
}

func TestAppendAndReplay(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 1<<20)

	const n = 100
	for i := 1; i <= n; i++ {
		rec := NewRecord(RecordList, uint64(i), []byte(fmt.Sprintf("op-%d", i)))
		if err := w.Append(rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_ = w.Sync()
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	count := 0
	last, err := Replay(dir, 0, func(rec *Record) error {
		if rec.Type != RecordList {
			t.Fatalf("unexpected record type: %v", rec.Type)
		}
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if count != n || last != n {
		t.Fatalf("expected %d records up to seq %d, got %d up to %d", n, n, count, last)
	}
}

func TestReplaySkipsCoveredRecords(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 1<<20)

	for i := 1; i <= 10; i++ {
		_ = w.Append(NewRecord(RecordList, uint64(i), []byte("x")))
	}
	_ = w.Close()

	count := 0
	last, err := Replay(dir, 7, func(*Record) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if count != 3 || last != 10 {
		t.Fatalf("expected 3 records after seq 7, got %d up to %d", count, last)
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 64) // tiny segments

	for i := 1; i <= 10; i++ {
		if err := w.Append(NewRecord(RecordBuy, uint64(i), []byte("rotate-me"))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	_ = w.Close()

	files, _ := os.ReadDir(dir)
	if len(files) < 2 {
		t.Fatalf("expected rotated segments, found %d files", len(files))
	}

	count := 0
	if _, err := Replay(dir, 0, func(*Record) error { count++; return nil }); err != nil {
		t.Fatalf("replay across segments: %v", err)
	}
	if count != 10 {
		t.Fatalf("expected 10 records across segments, got %d", count)
	}
}

func TestCRCIntegrity(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 1<<20)
	_ = w.Append(NewRecord(RecordList, 1, []byte("valid-record")))
	_ = w.Sync()
	_ = w.Close()

	path := filepath.Join(dir, "segment-000000.wal")
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	// corrupt payload bytes to break CRC
	_, _ = f.WriteAt([]byte{0xFF, 0xFF, 0xFF, 0xFF}, 22)
	f.Close()

	_, err = Replay(dir, 0, func(*Record) error { return nil })
	if err == nil {
		t.Fatal("expected corruption detection, got clean replay")
	}
}

func TestTruncateBefore(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 64)

	for i := 1; i <= 10; i++ {
		_ = w.Append(NewRecord(RecordList, uint64(i), []byte("truncate-me")))
	}

	if err := w.TruncateBefore(5); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	_ = w.Close()

	// Records above the truncation point must survive.
	var maxSeq uint64
	if _, err := Replay(dir, 0, func(rec *Record) error {
		if rec.Seq > maxSeq {
			maxSeq = rec.Seq
		}
		return nil
	}); err != nil {
		t.Fatalf("replay after truncate: %v", err)
	}
	if maxSeq != 10 {
		t.Fatalf("latest records lost by truncation, max seq %d", maxSeq)
	}
}

func TestTruncateThenReopenResumesHighestIndex(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 40) // one record per segment

	for i := 1; i <= 3; i++ {
		if err := w.Append(NewRecord(RecordList, uint64(i), []byte("truncate-reopen"))); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := w.TruncateBefore(2); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	_ = w.Close()

	// Truncation left a hole below the surviving segments; the reopened
	// WAL must keep writing above them, not refill the hole.
	w2 := openTestWAL(t, dir, 1<<20)
	if err := w2.Append(NewRecord(RecordList, 4, []byte("after-reopen"))); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	_ = w2.Close()

	var seqs []uint64
	last, err := Replay(dir, 2, func(rec *Record) error {
		seqs = append(seqs, rec.Seq)
		return nil
	})
	if err != nil {
		t.Fatalf("replay after truncate and reopen: %v", err)
	}
	if last != 4 || len(seqs) != 2 || seqs[0] != 3 || seqs[1] != 4 {
		t.Fatalf("expected seqs [3 4] up to 4, got %v up to %d", seqs, last)
	}
}

func TestReopenContinuesHighestSegment(t *testing.T) {
	dir := t.TempDir()
	w := openTestWAL(t, dir, 64)
	for i := 1; i <= 5; i++ {
		_ = w.Append(NewRecord(RecordList, uint64(i), []byte("first-open")))
	}
	_ = w.Close()

	w2 := openTestWAL(t, dir, 1<<20)
	if err := w2.Append(NewRecord(RecordList, 6, []byte("second-open"))); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	_ = w2.Close()

	count := 0
	if _, err := Replay(dir, 0, func(*Record) error { count++; return nil }); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if count != 6 {
		t.Fatalf("expected 6 records after reopen, got %d", count)
	}
}
