package market

import (
	"testing"

	"github.com/holiman/uint256"
)

func addr(b byte) Address {
	var a Address
	a[AddressLength-1] = b
	return a
}

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewListingRegistry()
	col, seller := addr(1), addr(2)

	if _, ok := r.Get(col, 0); ok {
		t.Error("empty registry should report absence")
	}

	r.Put(Listing{Collection: col, TokenID: 0, Price: uint256.NewInt(50), Seller: seller})
	l, ok := r.Get(col, 0)
	if !ok {
		t.Fatal("listing should exist after Put")
	}
	if l.Price.Uint64() != 50 || l.Seller != seller {
		t.Errorf("unexpected listing: %+v", l)
	}

	r.Remove(col, 0)
	if _, ok := r.Get(col, 0); ok {
		t.Error("listing should be absent after Remove")
	}
}

func TestRegistryKeysAreIndependent(t *testing.T) {
	r := NewListingRegistry()
	col := addr(1)

	r.Put(Listing{Collection: col, TokenID: 0, Price: uint256.NewInt(1), Seller: addr(2)})
	r.Put(Listing{Collection: col, TokenID: 1, Price: uint256.NewInt(2), Seller: addr(3)})

	if r.Len() != 2 {
		t.Fatalf("expected 2 listings, got %d", r.Len())
	}
	r.Remove(col, 0)
	if _, ok := r.Get(col, 1); !ok {
		t.Error("removing one key must not affect another")
	}
}

func TestSentinelNeverMatchesRealListing(t *testing.T) {
	s := SentinelListing(addr(1), 0)
	if !s.IsSentinel() {
		t.Error("sentinel should report IsSentinel")
	}

	real := Listing{Collection: addr(1), TokenID: 0, Price: uint256.NewInt(1), Seller: addr(2)}
	if real.IsSentinel() {
		t.Error("a priced listing must never equal the sentinel")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	a := addr(0xab)
	parsed, err := ParseAddress(a.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != a {
		t.Errorf("round trip mismatch: %s != %s", parsed, a)
	}

	if _, err := ParseAddress("0x1234"); err == nil {
		t.Error("short address should be rejected")
	}
}
