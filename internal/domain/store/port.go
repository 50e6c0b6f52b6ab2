package store

import "context"

type Repo interface {
	Upsert(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context) ([]*Store, error)
}
