//go:build wireinject

//go:generate wire
package di

import (
	"context"

	"github.com/lintang-b-s/parking-search/pkg/di/config"
	shortcontext "github.com/lintang-b-s/parking-search/pkg/di/context"
	engine_di "github.com/lintang-b-s/parking-search/pkg/di/engine"
	kv_di "github.com/lintang-b-s/parking-search/pkg/di/kv"
	logger_di "github.com/lintang-b-s/parking-search/pkg/di/logger"
	parkingHttp "github.com/lintang-b-s/parking-search/pkg/http"
	"github.com/lintang-b-s/parking-search/pkg/http/http-router/controllers"
	"github.com/lintang-b-s/parking-search/pkg/http/usecases"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.New,
	logger_di.New,
	kv_di.New,
	engine_di.New,
	engine_di.NewSearchDefaults,
)

var parkingSet = wire.NewSet(
	defaultSet,
	NewParkingService,
	NewParkingAPIServer,
)

func NewParkingService(log *zap.Logger, engine usecases.Engine,
	defaults usecases.SearchDefaults) controllers.ParkingService {
	return usecases.New(log, engine, defaults)
}

func NewParkingAPIServer(ctx context.Context, _ *config.Config, log *zap.Logger,
	parkingService controllers.ParkingService) (*parkingHttp.Server, error) {
	api := parkingHttp.NewServer(log)

	apiService, err := api.Use(
		ctx, log, parkingService,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}

func InitializeParkingService() (*parkingHttp.Server, func(), error) {

	panic(wire.Build(parkingSet))
}
