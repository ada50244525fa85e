package batches

import "batchcount/models"

// Entry is one registry row surfaced to the batches table, ordered by batch
// number.
type Entry struct {
	Number string
	Info   models.BatchInfo
}

// PageData feeds the batches page view.
type PageData struct {
	Products []string
	Message  string
}
