package exit

import (
	"testing"
)

func openTestWAL(t *testing.T) *ExitWAL {
	t.Helper()
	w, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestPutNewAndGet(t *testing.T) {
	w := openTestWAL(t)

	if err := w.PutNew(1, []byte(`{"type":"ItemListed"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec, err := w.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateNew || rec.Retries != 0 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if string(rec.Payload) != `{"type":"ItemListed"}` {
		t.Errorf("payload mismatch: %q", rec.Payload)
	}
}

func TestStateTransitionsPreservePayload(t *testing.T) {
	w := openTestWAL(t)
	_ = w.PutNew(1, []byte("payload"))

	if err := w.MarkSent(1); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if err := w.MarkFailed(1); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := w.MarkAcked(1); err != nil {
		t.Fatalf("mark acked: %v", err)
	}

	rec, err := w.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.State != StateAcked {
		t.Errorf("expected ACKED, got %s", rec.State)
	}
	if rec.Retries != 1 {
		t.Errorf("expected 1 retry, got %d", rec.Retries)
	}
	if string(rec.Payload) != "payload" {
		t.Errorf("payload lost across transitions: %q", rec.Payload)
	}
}

func TestScanByStateInSequenceOrder(t *testing.T) {
	w := openTestWAL(t)
	for seq := uint64(1); seq <= 5; seq++ {
		_ = w.PutNew(seq, []byte{byte(seq)})
	}
	_ = w.MarkAcked(2)
	_ = w.MarkAcked(4)

	var seqs []uint64
	err := w.ScanByState(StateNew, func(rec Record) error {
		seqs = append(seqs, rec.Seq)
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(seqs) != 3 || seqs[0] != 1 || seqs[1] != 3 || seqs[2] != 5 {
		t.Errorf("unexpected NEW scan: %v", seqs)
	}
}

func TestTruncateAckedUpTo(t *testing.T) {
	w := openTestWAL(t)
	for seq := uint64(1); seq <= 4; seq++ {
		_ = w.PutNew(seq, []byte("x"))
		_ = w.MarkAcked(seq)
	}

	if err := w.TruncateAckedUpTo(3); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	for seq := uint64(1); seq <= 3; seq++ {
		if _, err := w.Get(seq); err == nil {
			t.Errorf("seq %d should be gone", seq)
		}
	}
	if _, err := w.Get(4); err != nil {
		t.Error("seq 4 should survive truncation")
	}
}

func TestDeleteDroppedEvent(t *testing.T) {
	w := openTestWAL(t)
	_ = w.PutNew(1, []byte("x"))

	if err := w.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := w.Get(1); err == nil {
		t.Error("deleted record should not be found")
	}
}
