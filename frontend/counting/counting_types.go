package counting

import "batchcount/models"

// BatchSource is the read side of the batch registry the counting view joins
// against. The reference is a bare batch number; a missing batch renders as
// unknown instead of failing.
type BatchSource interface {
	Exists(batch string) bool
	Product(batch string) string
	Expiration(batch string) string
}

// IndexedItem pairs an item with its stable ledger position, used for later
// SetItem/RemoveItem calls within the same ledger generation.
type IndexedItem struct {
	Index int
	Item  models.Item
}

// PageData feeds the counting page view.
type PageData struct {
	Measures []string
	Message  string
}
