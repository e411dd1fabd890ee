package services

import (
	"context"

	"github.com/SscSPs/branchledger/internal/core/domain"
)

// MappingResolverSvc picks the GL mapping for a business transaction.
type MappingResolverSvc interface {
	// ResolveMapping returns the winning mapping for a transaction booked at
	// branchID, or ErrNotFound. The caller decides on a safe default; it must
	// never post to a made-up account.
	ResolveMapping(ctx context.Context, module domain.ServiceModule, transactionType, branchID string, attrs domain.TransactionAttributes) (*domain.GLMapping, error)
}

// MappingAdminSvc maintains the mapping table.
type MappingAdminSvc interface {
	CreateMapping(ctx context.Context, auth domain.AuthContext, mapping domain.GLMapping) (*domain.GLMapping, error)
	ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error)
}

type MappingSvcFacade interface {
	MappingResolverSvc
	MappingAdminSvc
}
