package bootstrap

import (
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/api"
)

// API holds the HTTP transport components.
type API struct {
	Handler *api.Handler
}

// registerAPI registers the HTTP handler.
func (b *Bootstrap) registerAPI() {
	b.API.Handler = api.NewHandler(
		b.Usecase.TickUsecase,
		b.Usecase.PairUsecase,
		b.QuestDB,
		b.Logger,
	)
}
