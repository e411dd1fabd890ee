package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
)

type accountDirectory struct {
	BaseService
	glRepo    portsrepo.GLAccountReader
	floatRepo portsrepo.FloatRepositoryFacade
	cache     portssvc.GLAccountCache
}

// AccountDirectoryOption is a functional option for configuring the account directory
type AccountDirectoryOption func(*accountDirectory)

// WithGLAccountCache puts a read-through cache in front of GL account lookups.
func WithGLAccountCache(cache portssvc.GLAccountCache) AccountDirectoryOption {
	return func(d *accountDirectory) {
		d.cache = cache
	}
}

func NewAccountDirectory(glRepo portsrepo.GLAccountReader, floatRepo portsrepo.FloatRepositoryFacade, opts ...AccountDirectoryOption) portssvc.AccountDirectorySvc {
	d := &accountDirectory{glRepo: glRepo, floatRepo: floatRepo}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ portssvc.AccountDirectorySvc = (*accountDirectory)(nil)

func (d *accountDirectory) GetGLAccount(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	if d.cache != nil {
		if acc, ok := d.cache.Get(ctx, accountID); ok {
			return acc, nil
		}
	}
	acc, err := d.glRepo.FindGLAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("GL account " + accountID)
		}
		d.LogError(ctx, err, "Failed to load GL account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load GL account %s: %w", accountID, err)
	}
	if d.cache != nil {
		d.cache.Set(ctx, *acc)
	}
	return acc, nil
}

func (d *accountDirectory) GetGLAccountByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	acc, err := d.glRepo.FindGLAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("GL account with code " + code)
		}
		return nil, fmt.Errorf("failed to load GL account by code %s: %w", code, err)
	}
	if d.cache != nil {
		d.cache.Set(ctx, *acc)
	}
	return acc, nil
}

func (d *accountDirectory) GetGLAccounts(ctx context.Context, accountIDs []string) (map[string]domain.GLAccount, error) {
	ids := uniqueStrings(accountIDs)
	result := make(map[string]domain.GLAccount, len(ids))

	missing := ids
	if d.cache != nil {
		missing = missing[:0:0]
		for _, id := range ids {
			if acc, ok := d.cache.Get(ctx, id); ok {
				result[id] = *acc
				continue
			}
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		found, err := d.glRepo.FindGLAccountsByIDs(ctx, missing)
		if err != nil {
			d.LogError(ctx, err, "Failed to load GL accounts", slog.Int("count", len(missing)))
			return nil, fmt.Errorf("failed to load GL accounts: %w", err)
		}
		for id, acc := range found {
			result[id] = acc
			if d.cache != nil {
				d.cache.Set(ctx, acc)
			}
		}
	}

	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, apperrors.NewNotFoundError("GL account " + id)
		}
	}
	return result, nil
}

func (d *accountDirectory) GetFloatAccount(ctx context.Context, floatAccountID string) (*domain.FloatAccount, error) {
	acc, err := d.floatRepo.FindFloatAccountByID(ctx, floatAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("float account " + floatAccountID)
		}
		return nil, fmt.Errorf("failed to load float account %s: %w", floatAccountID, err)
	}
	return acc, nil
}

// uniqueStrings returns the distinct non-empty values of input in first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, s := range input {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
