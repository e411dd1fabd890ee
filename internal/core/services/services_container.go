package services

import (
	portsrepo "github.com/SscSPs/branchledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/platform/config"
)

// Infrastructure bundles the optional adapters services publish to or read through.
// Nil members disable the corresponding feature.
type Infrastructure struct {
	Clock          portssvc.Clock
	IDs            portssvc.IDGenerator
	AccountCache   portssvc.GLAccountCache
	EventPublisher portssvc.EventPublisher
	EventTracker   portssvc.EventTracker
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var dirOpts []AccountDirectoryOption
	if infra.AccountCache != nil {
		dirOpts = append(dirOpts, WithGLAccountCache(infra.AccountCache))
	}
	container.Accounts = NewAccountDirectory(repos.GLAccountRepo, repos.FloatRepo, dirOpts...)

	container.Mappings = NewMappingService(repos.MappingRepo, container.Accounts, infra.Clock, infra.IDs)

	generator := NewJournalGenerator(infra.Clock, infra.IDs)
	container.Generator = generator

	postingOpts := []PostingServiceOption{}
	if infra.EventPublisher != nil {
		postingOpts = append(postingOpts, WithPostingEventPublisher(infra.EventPublisher))
	}
	if cfg.HasPostingFallback() {
		postingOpts = append(postingOpts, WithPostingFallback(cfg.FallbackDebitAccountCode, cfg.FallbackCreditAccountCode))
	}
	container.Posting = NewPostingService(repos.JournalRepo, container.Accounts, container.Mappings, generator, infra.Clock, postingOpts...)

	reversalOpts := []ReversalServiceOption{}
	if infra.EventPublisher != nil {
		reversalOpts = append(reversalOpts, WithReversalEventPublisher(infra.EventPublisher))
	}
	if infra.EventTracker != nil {
		reversalOpts = append(reversalOpts, WithReversalFailureTracker(infra.EventTracker))
	}
	container.Reversal = NewReversalService(repos.JournalRepo, container.Accounts, generator, container.Posting, infra.Clock, reversalOpts...)

	container.Statements = NewStatementService(repos.FloatRepo, repos.JournalRepo, repos.MappingRepo, container.Accounts)

	return container
}
