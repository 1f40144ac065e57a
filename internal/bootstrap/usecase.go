package bootstrap

import (
	"github.com/sandesh-malleboina/helper-analytics-for-traders/internal/analytics"
	pairDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/pair"
	tickDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/tick"
	pairUc "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/usecase/pair"
	tickUc "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/usecase/tick"
)

// Usecase holds the business-logic components.
type Usecase struct {
	TickUsecase tickDomain.Usecase
	PairUsecase pairDomain.Usecase
}

// registerUsecase registers the usecases.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.TickUsecase = tickUc.NewUsecase(
		b.Repository.TickRepository,
		b.Logger,
		b.Config.Feed.Symbols,
		b.Config.Analytics.MaxRowsPerSymbol,
	)
	b.Usecase.PairUsecase = pairUc.NewUsecase(
		b.Usecase.TickUsecase,
		analytics.NewEngine(b.Config.Analytics.SignificanceLevel),
		b.Logger,
		b.Config.Analytics,
	)
}
