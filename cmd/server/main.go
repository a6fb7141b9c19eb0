package main

import (
	"log"
	"net/http"
	"strconv"

	"blushmart-web/internal/api"
	"blushmart-web/internal/config"
	"blushmart-web/internal/localstore"
	"blushmart-web/internal/logger"
	"blushmart-web/internal/transport"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	rps, _ := strconv.ParseFloat(cfg.RequestsPerSec, 64)
	client := api.NewClient(cfg.BackendURL, rps)

	factory := storeFactory(cfg)
	reg := transport.NewRegistry(client, factory)

	router := transport.NewRouter(reg, cfg)

	log.Printf("🚀 storefront server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, router))
}

// storeFactory picks where session state lives: Redis when configured,
// otherwise one JSON file per session under StateDir.
func storeFactory(cfg *config.Config) transport.StoreFactory {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return func(namespace string) (localstore.Store, error) {
			return localstore.NewRedisStore(rdb, namespace)
		}
	}
	return func(namespace string) (localstore.Store, error) {
		return localstore.NewFileStore(cfg.StateDir, namespace)
	}
}
