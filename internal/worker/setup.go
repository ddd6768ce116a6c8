package worker

import (
	"context"
	"fmt"

	"github.com/ahrav/go-parity/internal/domain"
	"github.com/ahrav/go-parity/internal/store"
)

// InitializeRecordStore creates the Redis-backed record store the analytics
// activities read from and verifies connectivity. Returns the store for
// dependency injection rather than setting global state.
func InitializeRecordStore(ctx context.Context, opts store.Options) (*store.RecordStore, error) {
	client := store.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to record store at %s: %w", opts.Addr, err)
	}
	return store.NewRecordStore(client, domain.DefaultCatalog(), store.DefaultKeyPrefix), nil
}
