package market

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestLedgerCreditAndBalance(t *testing.T) {
	l := NewValueLedger()
	a := addr(1)

	if !l.Balance(a).IsZero() {
		t.Error("fresh account should have zero balance")
	}

	l.Credit(a, uint256.NewInt(50))
	l.Credit(a, uint256.NewInt(7))
	if got := l.Balance(a); got.Uint64() != 57 {
		t.Errorf("expected balance 57, got %s", got.Dec())
	}
}

func TestLedgerDrainIsReadThenZero(t *testing.T) {
	l := NewValueLedger()
	a := addr(1)
	l.Credit(a, uint256.NewInt(99))

	out := l.Drain(a)
	if out.Uint64() != 99 {
		t.Errorf("drain should yield 99, got %s", out.Dec())
	}
	if !l.Balance(a).IsZero() {
		t.Error("balance should be zero after drain")
	}
	if !l.Drain(a).IsZero() {
		t.Error("second drain should yield zero")
	}
}

func TestLedgerBalanceReturnsCopy(t *testing.T) {
	l := NewValueLedger()
	a := addr(1)
	l.Credit(a, uint256.NewInt(10))

	bal := l.Balance(a)
	bal.Clear()
	if got := l.Balance(a); got.Uint64() != 10 {
		t.Error("mutating a returned balance must not affect the ledger")
	}
}

func TestLedgerDebitClampsAtZero(t *testing.T) {
	l := NewValueLedger()
	a := addr(1)
	l.Credit(a, uint256.NewInt(10))

	l.Debit(a, uint256.NewInt(4))
	if got := l.Balance(a); got.Uint64() != 6 {
		t.Errorf("expected 6 after debit, got %s", got.Dec())
	}

	l.Debit(a, uint256.NewInt(100))
	if !l.Balance(a).IsZero() {
		t.Error("debit past zero should clamp")
	}
}

func TestLedgerWalkSkipsEmptyAccounts(t *testing.T) {
	l := NewValueLedger()
	l.Credit(addr(1), uint256.NewInt(5))
	l.Credit(addr(2), uint256.NewInt(5))
	l.Drain(addr(2))

	seen := 0
	l.Walk(func(a Address, bal *uint256.Int) {
		seen++
		if a != addr(1) {
			t.Errorf("unexpected account %s", a)
		}
	})
	if seen != 1 {
		t.Errorf("expected 1 account, got %d", seen)
	}
}
