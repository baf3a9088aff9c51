// Package repository defines the persistence interfaces the services
// depend on, plus their MySQL-backed implementations.
package repository

import (
	"context"

	"socialtrackr/internal/model"
)

type AccountRepo interface {
	Create(ctx context.Context, a *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// StateRepo loads and saves one account's whole planner state.
type StateRepo interface {
	Load(ctx context.Context, email string) (*model.UserState, error)
	Save(ctx context.Context, email string, state *model.UserState) error
}
