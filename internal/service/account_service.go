// Package service contains orchestration that spans more than one store.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/platform/logger"
	"github.com/rchoud/task-manager-api/internal/store"
)

// AccountService coordinates the multi-store parts of the account lifecycle.
type AccountService interface {
	// DeleteAccount removes the user and every task they own. Tasks go
	// first; if removing them fails the whole operation aborts and the user
	// record stays intact.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// accountServiceImpl implements AccountService over the Postgres stores.
type accountServiceImpl struct {
	db     *sql.DB
	users  store.UserStore
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewAccountService creates an AccountService.
func NewAccountService(
	db *sql.DB,
	users store.UserStore,
	tasks store.TaskStore,
	log *slog.Logger,
) AccountService {
	if log == nil {
		log = slog.Default()
	}
	return &accountServiceImpl{
		db:     db,
		users:  users,
		tasks:  tasks,
		logger: log.With(slog.String("component", "account_service")),
	}
}

// DeleteAccount implements AccountService.DeleteAccount
// The two deletes run in one transaction, tasks first: an abort leaves the
// user (and their tasks) exactly as they were, and a commit can never leave
// orphaned tasks behind. Session rows go with the user row via the schema's
// cascade, revoking every outstanding token.
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		deleted, err := s.tasks.WithTx(tx).DeleteByOwner(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to delete owned tasks: %w", err)
		}

		if err := s.users.WithTx(tx).Delete(ctx, userID); err != nil {
			return err
		}

		log.Info("account deleted",
			slog.String("user_id", userID.String()),
			slog.Int64("tasks_deleted", deleted))
		return nil
	})
	if err != nil {
		log.Error("account deletion failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	return nil
}
