package infra

import (
	"github.com/gridscope/transformer-asset-service/config"
	"github.com/gridscope/transformer-asset-service/infra/produce"
)

type Infra struct {
	Postgres *PostgresClient
	Storage  *LocalStorageClient
	Logger   *LoggerClient
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Produce  *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	storage := InitLocalStorageClient(cfg.EnvConfig)
	if storage == nil {
		panic("Failed to initialize local storage service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	// Redis and RabbitMQ are optional collaborators.
	redis := InitRedisClient(cfg.EnvConfig)
	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)

	var produceService *produce.Produce
	if rabbitMQ != nil {
		produceService = produce.InitProduce(rabbitMQ.Channel)
	}

	infraInstance = &Infra{
		Postgres: postgres,
		Storage:  storage,
		Logger:   logger,
		Redis:    redis,
		RabbitMQ: rabbitMQ,
		Produce:  produceService,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
