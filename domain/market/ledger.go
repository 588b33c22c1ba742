package market

import "github.com/holiman/uint256"

// ValueLedger tracks withdrawable proceeds per identity.
// Accounts are created implicitly on first credit and never destroyed,
// only drained to zero.
type ValueLedger struct {
	balances map[Address]*uint256.Int
}

func NewValueLedger() *ValueLedger {
	return &ValueLedger{
		balances: make(map[Address]*uint256.Int),
	}
}

// Credit adds amount to addr's balance. Amount must be strictly
// positive; the settlement engine rejects zero-value credits upstream.
func (l *ValueLedger) Credit(addr Address, amount *uint256.Int) {
	bal, ok := l.balances[addr]
	if !ok {
		bal = uint256.NewInt(0)
		l.balances[addr] = bal
	}
	bal.Add(bal, amount)
}

// Balance returns a copy of addr's current balance.
func (l *ValueLedger) Balance(addr Address) *uint256.Int {
	bal, ok := l.balances[addr]
	if !ok {
		return uint256.NewInt(0)
	}
	return bal.Clone()
}

// Drain returns addr's balance and resets it to zero as a single step.
// There is no observable state where the balance has been read but not
// yet cleared.
func (l *ValueLedger) Drain(addr Address) *uint256.Int {
	bal, ok := l.balances[addr]
	if !ok {
		return uint256.NewInt(0)
	}
	out := bal.Clone()
	bal.Clear()
	return out
}

// Debit subtracts amount from addr's balance, clamping at zero.
// Used only for settlement rollback after a failed external call.
func (l *ValueLedger) Debit(addr Address, amount *uint256.Int) {
	bal, ok := l.balances[addr]
	if !ok {
		return
	}
	if bal.Lt(amount) {
		bal.Clear()
		return
	}
	bal.Sub(bal, amount)
}

// Walk visits every account with a non-zero balance.
func (l *ValueLedger) Walk(fn func(Address, *uint256.Int)) {
	for addr, bal := range l.balances {
		if bal.IsZero() {
			continue
		}
		fn(addr, bal.Clone())
	}
}
