package repositories

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// MappingReader defines read operations for GL mappings.
type MappingReader interface {
	// ListMappings returns every mapping for the pair, active or not, in
	// priority then creation order. Resolution depends on this order.
	ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error)
}

// MappingWriter defines write operations for GL mappings.
type MappingWriter interface {
	SaveMapping(ctx context.Context, mapping domain.GLMapping) error
}

type MappingRepositoryFacade interface {
	MappingReader
	MappingWriter
}
