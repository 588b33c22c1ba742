package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"bazaar/domain/market"
)

// Journal payload formats. Pipe-joined text: cheap to write, trivial
// to replay, greppable on disk.

// seller|collection|tokenID|price
func encodeListingOp(l market.Listing) []byte {
	return []byte(fmt.Sprintf("%s|%s|%d|%s", l.Seller, l.Collection, l.TokenID, l.Price.Dec()))
}

func decodeListingOp(b []byte) (market.Listing, error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 4 {
		return market.Listing{}, fmt.Errorf("invalid listing payload: %q", b)
	}
	seller, err := market.ParseAddress(parts[0])
	if err != nil {
		return market.Listing{}, err
	}
	collection, err := market.ParseAddress(parts[1])
	if err != nil {
		return market.Listing{}, err
	}
	tokenID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return market.Listing{}, err
	}
	price, err := uint256.FromDecimal(parts[3])
	if err != nil {
		return market.Listing{}, err
	}
	return market.Listing{
		Collection: collection,
		TokenID:    tokenID,
		Price:      price,
		Seller:     seller,
	}, nil
}

// buyer|seller|collection|tokenID|price|paid
func encodeBuyOp(buyer market.Address, l market.Listing, paid *uint256.Int) []byte {
	return []byte(fmt.Sprintf("%s|%s|%s|%d|%s|%s",
		buyer, l.Seller, l.Collection, l.TokenID, l.Price.Dec(), paid.Dec()))
}

func decodeBuyOp(b []byte) (buyer market.Address, l market.Listing, paid *uint256.Int, err error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 6 {
		return buyer, l, nil, fmt.Errorf("invalid buy payload: %q", b)
	}
	if buyer, err = market.ParseAddress(parts[0]); err != nil {
		return buyer, l, nil, err
	}
	if l.Seller, err = market.ParseAddress(parts[1]); err != nil {
		return buyer, l, nil, err
	}
	if l.Collection, err = market.ParseAddress(parts[2]); err != nil {
		return buyer, l, nil, err
	}
	if l.TokenID, err = strconv.ParseUint(parts[3], 10, 64); err != nil {
		return buyer, l, nil, err
	}
	if l.Price, err = uint256.FromDecimal(parts[4]); err != nil {
		return buyer, l, nil, err
	}
	if paid, err = uint256.FromDecimal(parts[5]); err != nil {
		return buyer, l, nil, err
	}
	return buyer, l, paid, nil
}

// owner|amount
func encodeLedgerOp(addr market.Address, amount *uint256.Int) []byte {
	return []byte(fmt.Sprintf("%s|%s", addr, amount.Dec()))
}

func decodeLedgerOp(b []byte) (market.Address, *uint256.Int, error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 2 {
		return market.ZeroAddress, nil, fmt.Errorf("invalid ledger payload: %q", b)
	}
	addr, err := market.ParseAddress(parts[0])
	if err != nil {
		return market.ZeroAddress, nil, err
	}
	amount, err := uint256.FromDecimal(parts[1])
	if err != nil {
		return market.ZeroAddress, nil, err
	}
	return addr, amount, nil
}
