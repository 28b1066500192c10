package infra

import (
	"context"

	"github.com/fileshare-io/fileshare-api/config"
	"github.com/fileshare-io/fileshare-api/infra/produce"
)

type Infra struct {
	Redis     *RedisClient
	Postgres  *PostgresClient
	Logger    *LoggerClient
	Telemetry *TelemetryClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Minio     *MinioClient
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry := InitTelemetryClient(cfg.EnvConfig)
	if telemetry == nil {
		panic("Failed to initialize Telemetry service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	if rabbitMQ == nil {
		panic("Failed to initialize RabbitMQ service")
	}

	produceService := produce.InitProduce(rabbitMQ.Channel)
	if produceService == nil {
		panic("Failed to initialize Produce service")
	}

	minio := InitMinioClient(cfg.EnvConfig)
	if minio == nil {
		panic("Failed to initialize MinIO service")
	}

	infraInstance = &Infra{
		Redis:     redis,
		Postgres:  postgres,
		Logger:    logger,
		Telemetry: telemetry,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Minio:     minio,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}

// Shutdown flushes telemetry and closes broker connections.
func (i *Infra) Shutdown(ctx context.Context) {
	if i.RabbitMQ != nil {
		i.RabbitMQ.Close()
	}
	if i.Telemetry != nil {
		_ = i.Telemetry.Shutdown(ctx)
	}
	if i.Logger != nil {
		_ = i.Logger.Shutdown(ctx)
	}
}
