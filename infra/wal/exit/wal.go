// Package exit implements the durable event outbox. Committed events
// are inserted as NEW and flushed to the broker by the broadcaster;
// acknowledged records are garbage-collected after snapshots.
package exit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// -------------------- State --------------------

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Record --------------------

type Record struct {
	Seq         uint64
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// binary encoding: [state:1][retries:4][lastAttempt:8][payload]
func encodeRecord(r Record) []byte {
	buf := make([]byte, 1+4+8+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeRecord(seq uint64, b []byte) (Record, error) {
	if len(b) < 13 {
		return Record{}, errors.New("exit: invalid record length")
	}
	payload := make([]byte, len(b)-13)
	copy(payload, b[13:])
	return Record{
		Seq:         seq,
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     payload,
	}, nil
}

// -------------------- WAL --------------------

type ExitWAL struct {
	db *pebble.DB
}

func Open(dir string) (*ExitWAL, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // we WANT durability
	})
	if err != nil {
		return nil, err
	}
	return &ExitWAL{db: db}, nil
}

func (w *ExitWAL) Close() error {
	return w.db.Close()
}

// -------------------- API --------------------

// PutNew inserts a new outbox entry (called by the settlement engine
// at commit time).
func (w *ExitWAL) PutNew(seq uint64, payload []byte) error {
	rec := Record{
		Seq:     seq,
		State:   StateNew,
		Payload: payload,
	}
	return w.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// MarkSent transitions a record to SENT before the publish attempt.
func (w *ExitWAL) MarkSent(seq uint64) error {
	return w.setState(seq, StateSent, 0)
}

// MarkAcked transitions a record to ACKED after broker confirmation.
func (w *ExitWAL) MarkAcked(seq uint64) error {
	return w.setState(seq, StateAcked, 0)
}

// MarkFailed transitions a record to FAILED and bumps its retry count.
func (w *ExitWAL) MarkFailed(seq uint64) error {
	return w.setState(seq, StateFailed, 1)
}

func (w *ExitWAL) setState(seq uint64, state State, bump uint32) error {
	rec, err := w.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries += bump
	rec.LastAttempt = time.Now().UnixNano()
	return w.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// Delete removes a record (rollback of an event whose settlement was
// reverted, or cleanup).
func (w *ExitWAL) Delete(seq uint64) error {
	return w.db.Delete(keyFor(seq), pebble.Sync)
}

// Get returns the current record for a sequence.
func (w *ExitWAL) Get(seq uint64) (Record, error) {
	val, closer, err := w.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()

	return decodeRecord(seq, val)
}

// -------------------- Scan --------------------

// ScanByState iterates all records in the given state, in sequence
// order. This is used by the broadcaster.
func (w *ExitWAL) ScanByState(state State, fn func(rec Record) error) error {
	iter, err := w.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("event/"),
		UpperBound: []byte("event/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}

		rec, err := decodeRecord(seq, iter.Value())
		if err != nil {
			return err
		}

		if rec.State != state {
			continue
		}

		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// TruncateAckedUpTo removes ACKED records at or below seq.
func (w *ExitWAL) TruncateAckedUpTo(seq uint64) error {
	return w.ScanByState(StateAcked, func(rec Record) error {
		if rec.Seq > seq {
			return nil
		}
		return w.db.Delete(keyFor(rec.Seq), pebble.Sync)
	})
}

// -------------------- Helpers --------------------

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("event/%020d", seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte("event/"))), "%d", &seq)
	return seq, err
}
