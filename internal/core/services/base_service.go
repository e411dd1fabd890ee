package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	"github.com/SscSPs/branchledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the request-scoped logger from context or the default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeBranch allows admins everywhere and everyone else only inside their own branch.
func (s *BaseService) AuthorizeBranch(ctx context.Context, auth domain.AuthContext, branchID string) error {
	if auth.IsAdmin() || auth.BranchID == branchID {
		return nil
	}
	s.LogWarn(ctx, "Branch access denied",
		slog.String("user_id", auth.UserID),
		slog.String("user_branch_id", auth.BranchID),
		slog.String("requested_branch_id", branchID))
	return apperrors.NewForbiddenError("branch " + branchID + " is outside the caller's scope")
}
