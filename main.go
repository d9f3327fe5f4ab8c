package main

import (
	"context"
	"log"
	"os"
	"time"

	"archreview/internal/api"
	"archreview/internal/auth"
	"archreview/internal/config"
	"archreview/internal/models"
	"archreview/internal/redis"
	"archreview/internal/service/document"
	"archreview/internal/service/insights"
	"archreview/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/quicksight"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("ARCHREVIEW_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		objects  storage.ObjectStore
		metadata storage.MetadataStore
		local    *storage.MemoryObjectStore
		embed    *insights.Service
	)
	if cfg.BasicConfig.LocalMode {
		baseURL := cfg.BasicConfig.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:8090"
		}
		log.Printf("local mode: storage is in-memory and not durable")
		local = storage.NewMemoryObjectStore(baseURL)
		objects = local
		metadata = storage.NewMemoryMetadataStore()
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			log.Fatalf("load aws config: %v", err)
		}
		objects = storage.NewS3Store(awsCfg, cfg.AWS.BucketName)
		metadata = storage.NewDynamoStore(awsCfg, cfg.AWS.TableName)
		if cfg.QuickSight.AccountID != "" {
			embed = insights.NewService(quicksight.NewFromConfig(awsCfg), cfg.QuickSight, cfg.AWS.Region)
		}
	}

	documentService := document.NewService(objects, metadata, models.PresignTTLSeconds*time.Second)

	var authService *auth.Service
	if cfg.BasicConfig.AuthEnabled {
		var cache *redis.Client
		if cfg.Redis.Host != "" {
			cache, err = redis.NewClient(cfg)
			if err != nil {
				log.Fatalf("create redis client: %v", err)
			}
			defer cache.Close()
		}
		cacheTTL := time.Duration(cfg.BasicConfig.AuthCacheTTLMinutes) * time.Minute
		authService = auth.NewService(&auth.StaticVerifier{Tokens: cfg.BasicConfig.AuthTokens}, cache, cacheTTL)
	}

	handlers := api.NewHandler(documentService, embed, authService, local)

	router := gin.Default()
	handlers.RegisterRoutes(router)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":8090"
	}

	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
