package storage

import "time"

// Document is one stored JSON document.
type Document struct {
	Key       string
	Version   int
	Body      []byte
	UpdatedAt time.Time
}
