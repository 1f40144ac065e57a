package bootstrap

import (
	tickInfra "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/infrastructure/questdb/tick"
)

// Repository holds the storage-layer components.
type Repository struct {
	TickRepository tickInfra.TickRepository
}

// registerRepository registers the repositories.
func (b *Bootstrap) registerRepository() {
	b.Repository.TickRepository = tickInfra.NewRepository(b.QuestDB)
}
