package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"brainpin/application/ports"
	"brainpin/application/services"
	"brainpin/infrastructure/config"
	"brainpin/infrastructure/persistence/dynamodb"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideLinkRepository creates a link repository
func ProvideLinkRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.LinkRepository {
	return dynamodb.NewLinkRepository(client, cfg.LinksTable, logger)
}

// ProvideCategoryRepository creates a category repository
func ProvideCategoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CategoryRepository {
	return dynamodb.NewCategoryRepository(client, cfg.CategoriesTable, logger)
}

// ProvideLinkService creates the link service
func ProvideLinkService(linkRepo ports.LinkRepository, categoryRepo ports.CategoryRepository, logger *zap.Logger) *services.LinkService {
	return services.NewLinkService(linkRepo, categoryRepo, logger)
}

// ProvideCategoryService creates the category service
func ProvideCategoryService(categoryRepo ports.CategoryRepository, linkRepo ports.LinkRepository, logger *zap.Logger) *services.CategoryService {
	return services.NewCategoryService(categoryRepo, linkRepo, logger)
}
