package market

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published on the observer channel.
const (
	EventItemListed    = "ItemListed"
	EventItemBought    = "ItemBought"
	EventItemCancelled = "ItemCancelled"
)

// Envelope wraps every published event. Seq is the engine sequence
// assigned at commit time; ID is an idempotency key for consumers.
type Envelope struct {
	V       int             `json:"v"`
	ID      string          `json:"id"`
	Seq     uint64          `json:"seq"`
	Type    string          `json:"type"`
	Time    int64           `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

type ItemListedEvent struct {
	Seller     Address `json:"seller"`
	Collection Address `json:"collection"`
	TokenID    uint64  `json:"tokenId"`
	Price      string  `json:"price"`
}

type ItemBoughtEvent struct {
	Buyer      Address `json:"buyer"`
	Collection Address `json:"collection"`
	TokenID    uint64  `json:"tokenId"`
	Price      string  `json:"price"`
}

type ItemCancelledEvent struct {
	Seller     Address `json:"seller"`
	Collection Address `json:"collection"`
	TokenID    uint64  `json:"tokenId"`
}

// NewEnvelope serializes an event payload into a versioned envelope.
func NewEnvelope(seq uint64, typ string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		V:       1,
		ID:      uuid.NewString(),
		Seq:     seq,
		Type:    typ,
		Time:    time.Now().UnixNano(),
		Payload: body,
	})
}
