package service

import (
	"context"
	"time"

	"bazaar/snapshot"
)

// StartSnapshotJob periodically persists a snapshot and truncates both
// WALs behind it.
func (s *MarketService) StartSnapshotJob(ctx context.Context, dir string, interval time.Duration) {
	w := &snapshot.Writer{Dir: dir}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.mu.Lock()
				seq := s.seqGen.Current()
				err := w.Write(seq, s.listings, s.ledger)
				s.mu.Unlock()
				if err != nil {
					log.Warnw("snapshot write failed", "seq", seq, "err", err)
					continue
				}

				// Truncate ENTRY WAL after snapshot
				_ = s.entryWAL.TruncateBefore(seq)

				// GC EXIT WAL (acked only)
				_ = s.exitWAL.TruncateAckedUpTo(seq)
			}
		}
	}()
}
