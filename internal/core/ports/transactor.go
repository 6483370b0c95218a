package ports

import "context"

// Transactor runs fn inside a store transaction. Repository calls made with
// the ctx passed to fn take part in it; if fn returns an error every write is
// rolled back.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
