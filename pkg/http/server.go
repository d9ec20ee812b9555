package http

import (
	"context"

	http_router "github.com/lintang-b-s/parking-search/pkg/http/http-router"
	"github.com/lintang-b-s/parking-search/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/parking-search/pkg/http/server"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger

	eg errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	parkingService controllers.ParkingService,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)

	viper.SetDefault("API_TIMEOUT", "1000s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	s.eg.Go(func() error {
		return server.Run(
			ctx, config, log, parkingService,
		)
	})

	return s, nil

}

// Wait blocks until the listener exits.
func (s *Server) Wait() error {
	return s.eg.Wait()
}
