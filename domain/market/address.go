package market

import (
	"encoding/hex"
	"errors"
	"strings"
)

// AddressLength is the byte length of an identity.
const AddressLength = 20

// Address identifies an account or an asset collection.
type Address [AddressLength]byte

// ZeroAddress is the absent identity used by the sentinel listing.
var ZeroAddress = Address{}

var ErrInvalidAddress = errors.New("market: invalid address")

// ParseAddress decodes a 0x-prefixed or bare hex identity.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != AddressLength*2 {
		return ZeroAddress, ErrInvalidAddress
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return ZeroAddress, ErrInvalidAddress
	}
	return a, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := ParseAddress(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
