package entry

import "time"

type RecordType uint8

// One record type per committed mutation of the listing registry or
// value ledger. Revert records are written when an external call fails
// after commit, so replay reproduces the rollback too.
const (
	RecordList RecordType = iota
	RecordBuy
	RecordBuyRevert
	RecordCancel
	RecordUpdate
	RecordWithdraw
	RecordWithdrawRefund
)

type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}
