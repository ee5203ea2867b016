package server

import (
	"context"
	"database/sql"

	"github.com/honganh1206/datetime/cache"
	"github.com/honganh1206/datetime/history"
)

type HistoryStore interface {
	Save(ctx context.Context, r *history.Record) error
	List(ctx context.Context, limit int) ([]*history.Record, error)
	Get(ctx context.Context, id string) (*history.Record, error)
}

// Models bundles the server's storage. Cache may be nil.
type Models struct {
	History HistoryStore
	Cache   *cache.Cache
}

func NewModels(db *sql.DB, c *cache.Cache) *Models {
	return &Models{
		History: &history.Model{DB: db},
		Cache:   c,
	}
}
