package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"socialtrackr/internal/model"
	"socialtrackr/internal/store"
)

type kvStateRepo struct{ kv store.KV }

// NewStateRepo builds a StateRepo on any blob backend.
func NewStateRepo(kv store.KV) StateRepo {
	return &kvStateRepo{kv: kv}
}

// Load returns the stored state, or a fresh default when none exists or
// the stored blob is unreadable (same recovery as a corrupt localStorage
// entry: start over rather than fail the login).
func (r *kvStateRepo) Load(ctx context.Context, email string) (*model.UserState, error) {
	data, ok, err := r.kv.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewUserState(), nil
	}
	var s model.UserState
	if err := json.Unmarshal(data, &s); err != nil {
		return model.NewUserState(), nil
	}
	if s.Step == 0 {
		s.Step = 1
	}
	if s.Calendar == nil {
		s.Calendar = map[string]model.Post{}
	}
	if s.Done == nil {
		s.Done = map[string]bool{}
	}
	if s.Edits == nil {
		s.Edits = map[string]model.Edit{}
	}
	return &s, nil
}

func (r *kvStateRepo) Save(ctx context.Context, email string, state *model.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return r.kv.Put(ctx, email, data)
}
