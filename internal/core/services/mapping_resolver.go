package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
)

type mappingService struct {
	BaseService
	repo     portsrepo.MappingRepositoryFacade
	accounts portssvc.AccountDirectorySvc
	clock    portssvc.Clock
	ids      portssvc.IDGenerator
}

func NewMappingService(repo portsrepo.MappingRepositoryFacade, accounts portssvc.AccountDirectorySvc, clock portssvc.Clock, ids portssvc.IDGenerator) portssvc.MappingSvcFacade {
	return &mappingService{repo: repo, accounts: accounts, clock: clock, ids: ids}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

func (s *mappingService) ResolveMapping(ctx context.Context, module domain.ServiceModule, transactionType, branchID string, attrs domain.TransactionAttributes) (*domain.GLMapping, error) {
	mappings, err := s.repo.ListMappings(ctx, module, transactionType)
	if err != nil {
		s.LogError(ctx, err, "Failed to load GL mappings", slog.String("module", string(module)), slog.String("transaction_type", transactionType))
		return nil, fmt.Errorf("failed to load GL mappings: %w", err)
	}

	mapping, err := SelectMapping(mappings, module, transactionType, branchID, attrs)
	if err != nil {
		s.LogDebug(ctx, "No GL mapping matched",
			slog.String("module", string(module)),
			slog.String("transaction_type", transactionType),
			slog.String("branch_id", branchID))
		return nil, err
	}
	s.LogDebug(ctx, "GL mapping resolved", slog.String("mapping_id", mapping.ID), slog.Int("conditions", len(mapping.Conditions)))
	return mapping, nil
}

// SelectMapping applies the resolution policy to mappings in their stored order.
// Mappings scoped to branchID are tried first, then global ones; mappings scoped
// to any other branch are never candidates. Within a tier the first active
// conditioned mapping whose conditions all hold wins, then the first active
// unconditioned mapping.
func SelectMapping(mappings []domain.GLMapping, module domain.ServiceModule, transactionType, branchID string, attrs domain.TransactionAttributes) (*domain.GLMapping, error) {
	var branchScoped, global []domain.GLMapping
	for _, m := range mappings {
		if !m.IsActive || m.ServiceModule != module || m.TransactionType != transactionType {
			continue
		}
		switch {
		case m.BranchID == nil:
			global = append(global, m)
		case branchID != "" && *m.BranchID == branchID:
			branchScoped = append(branchScoped, m)
		}
	}
	if len(branchScoped) == 0 && len(global) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no active GL mapping for %s/%s", module, transactionType))
	}

	for _, tier := range [][]domain.GLMapping{branchScoped, global} {
		if m := selectInTier(tier, attrs); m != nil {
			return m, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no GL mapping conditions matched for %s/%s", module, transactionType))
}

func selectInTier(candidates []domain.GLMapping, attrs domain.TransactionAttributes) *domain.GLMapping {
	var firstUnconditioned *domain.GLMapping
	for i := range candidates {
		m := candidates[i]
		if !m.HasConditions() {
			if firstUnconditioned == nil {
				firstUnconditioned = &m
			}
			continue
		}
		if allConditionsHold(m, attrs) {
			return &m
		}
	}
	return firstUnconditioned
}

func (s *mappingService) CreateMapping(ctx context.Context, auth domain.AuthContext, mapping domain.GLMapping) (*domain.GLMapping, error) {
	if !auth.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins may maintain GL mappings")
	}
	if err := mapping.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	accounts, err := s.accounts.GetGLAccounts(ctx, []string{mapping.DebitAccountID, mapping.CreditAccountID})
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("GL account " + acc.Code + " is inactive")
		}
	}

	now := s.clock.Now()
	mapping.ID = s.ids.NewID()
	mapping.IsActive = true
	mapping.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     auth.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: auth.UserID,
	}

	if err := s.repo.SaveMapping(ctx, mapping); err != nil {
		s.LogError(ctx, err, "Failed to save GL mapping", slog.String("module", string(mapping.ServiceModule)))
		return nil, fmt.Errorf("failed to save GL mapping: %w", err)
	}
	s.LogInfo(ctx, "GL mapping created",
		slog.String("mapping_id", mapping.ID),
		slog.String("module", string(mapping.ServiceModule)),
		slog.String("transaction_type", mapping.TransactionType))
	return &mapping, nil
}

func (s *mappingService) ListMappings(ctx context.Context, module domain.ServiceModule, transactionType string) ([]domain.GLMapping, error) {
	if !module.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown service module %q", module))
	}
	mappings, err := s.repo.ListMappings(ctx, module, transactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to list GL mappings: %w", err)
	}
	return mappings, nil
}
