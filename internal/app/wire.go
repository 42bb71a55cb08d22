package app

import (
	"sealgram/internal/domain"
	"sealgram/internal/protocol/seal"
	messagesvc "sealgram/internal/services/message"
	"sealgram/internal/store"
	"sealgram/internal/worker"
)

// App bundles the stores, services and the shared sealing pool for the
// CLI. The pool is an explicitly constructed dependency, not a hidden
// global, so callers control its lifetime and size.
type App struct {
	Files     *store.FileStore
	Identity  domain.IdentityStore
	Directory domain.ParticipantDirectory
	Messages  *messagesvc.Service
	Pool      *worker.Pool
}

// New constructs the dependency graph from cfg.
func New(cfg Config) *App {
	files := store.NewFileStore(cfg.Home)
	pool := worker.NewPool(seal.Handler, cfg.PoolWorkers, cfg.PoolQueueDepth)
	sealer := seal.New(pool, cfg.ParallelThreshold)

	return &App{
		Files:     files,
		Identity:  files,
		Directory: files,
		Messages:  messagesvc.New(files, files, files, sealer),
		Pool:      pool,
	}
}

// Close releases the shared sealing pool.
func (a *App) Close() {
	a.Pool.Close()
}
