package catalog

import (
	"context"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// Catalog looks up the canonical template for a classification key.
// Implementations return (nil, nil) on a miss; errors are reserved for
// infrastructure failures.
type Catalog interface {
	Get(ctx context.Context, key Key) (*entity.Template, error)
}
