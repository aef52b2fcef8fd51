package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	LoadDocument(ctx context.Context, key string) (Document, error)
	// SaveDocuments upserts every document in one transaction.
	SaveDocuments(ctx context.Context, docs ...Document) error
	DeleteDocument(ctx context.Context, key string) error
	ListDocuments(ctx context.Context, filter DocumentListFilter) ([]Document, error)
}
