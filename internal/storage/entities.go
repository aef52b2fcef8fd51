package storage

import "time"

// Document is one whole-document snapshot row. Body is the JSON encoding of
// the value stored under Key.
type Document struct {
	Key       string
	Body      []byte
	UpdatedAt time.Time
}

type DocumentListFilter struct {
	Prefix string
	Limit  int
	Offset int
}
