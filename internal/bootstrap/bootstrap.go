// Package bootstrap wires repositories, usecases and the transport layer
// together for the service binaries.
package bootstrap

import (
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/config"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/logger"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/questdb"
)

// Bootstrap holds every constructed component of the service.
type Bootstrap struct {
	Repository Repository
	Usecase    Usecase
	API        API
	Collector  Collector

	Logger  logger.Interface
	QuestDB questdb.QuestDBClient
	Config  *config.Config
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	QuestDB questdb.QuestDBClient
	Logger  logger.Interface
	Config  *config.Config
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.QuestDB = config.QuestDB
	b.Logger = config.Logger
	b.Config = config.Config

	b.registerRepository()
	b.registerUsecase()
	b.registerAPI()
	b.registerCollector()

	return *b
}
