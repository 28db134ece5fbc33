//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"brainpin/application/ports"
	"brainpin/application/services"
	"brainpin/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	LinkRepo        ports.LinkRepository
	CategoryRepo    ports.CategoryRepository
	LinkService     *services.LinkService
	CategoryService *services.CategoryService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideLinkRepository,
	ProvideCategoryRepository,
	ProvideLinkService,
	ProvideCategoryService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
