package market

// ListingRegistry is a pure keyed store of active listings.
// It performs no validation; duplicate and absence checks are the
// settlement engine's job. Single-writer, like the rest of the domain.
type ListingRegistry struct {
	entries map[Key]Listing
}

func NewListingRegistry() *ListingRegistry {
	return &ListingRegistry{
		entries: make(map[Key]Listing),
	}
}

// Get returns the listing for (collection, token) and whether one exists.
// Callers that need the external sentinel contract go through the
// service layer, which converts absence into SentinelListing.
func (r *ListingRegistry) Get(collection Address, tokenID uint64) (Listing, bool) {
	l, ok := r.entries[Key{Collection: collection, TokenID: tokenID}]
	return l, ok
}

// Put inserts or overwrites the entry for the listing's key.
func (r *ListingRegistry) Put(l Listing) {
	r.entries[l.Key()] = l
}

// Remove resets the entry to absent.
func (r *ListingRegistry) Remove(collection Address, tokenID uint64) {
	delete(r.entries, Key{Collection: collection, TokenID: tokenID})
}

// Walk visits every active listing.
func (r *ListingRegistry) Walk(fn func(Listing)) {
	for _, l := range r.entries {
		fn(l)
	}
}

func (r *ListingRegistry) Len() int {
	return len(r.entries)
}
