// Package entry implements the segmented write-ahead journal of
// marketplace operations. It supports CRC-validated framed records,
// size-based segment rotation, replay iteration, and truncation after
// snapshots.
package entry
