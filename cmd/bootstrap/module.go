package bootstrap

import (
	"campus-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module wires the API server process.
var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	QueueModule,
	NotifierModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// WorkerModule wires the queue worker process. It shares the usecase
// layer with the API server so reminder handlers reuse the same
// lifecycle transitions.
var WorkerModule = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	QueueModule,
	NotifierModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.WorkerModule,
)
