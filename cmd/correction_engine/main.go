package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mvalente/go-correction-engine/api"
	"github.com/mvalente/go-correction-engine/config"
	"github.com/mvalente/go-correction-engine/internal/engine"
)

const maxRequestBodySize = 1 << 20 // 1 MB

func main() {
	// Define command-line flags
	var (
		help      = flag.Bool("help", false, "Show help message")
		version   = flag.Bool("version", false, "Show version information")
		port      = flag.String("port", "8080", "Port to run the server on")
		dataDir   = flag.String("data-dir", "./correction_data", "Directory to store engine data")
		shardDir  = flag.String("shard-dir", "", "Directory holding dictionary shards (default: <data-dir>/shards)")
		redisAddr = flag.String("redis-addr", "", "Redis address for the custom dictionary (empty disables it)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Correction Engine - A fuzzy text-correction service with context-aware ranking\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                    # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /var/lib/corrector  # Use custom data directory\n", os.Args[0])
		fmt.Printf("  %s --redis-addr localhost:6379    # Enable the custom dictionary\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Correction Engine v1.0.0\n")
		fmt.Printf("Sharded dictionary lookup, context-aware ranking, and sentence revalidation\n")
		return
	}

	settings := config.EngineSettings{ShardDir: *shardDir}
	if settings.ShardDir == "" {
		settings.ShardDir = filepath.Join(*dataDir, "shards")
	}
	settings.ApplyDefaults()
	if conflicts := settings.Validate(); len(conflicts) > 0 {
		log.Fatalf("Invalid engine settings: %v", conflicts)
	}

	var redisClient *redis.Client
	if *redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: *redisAddr})
		log.Printf("Custom dictionary enabled via Redis at %s", *redisAddr)
	}

	// Initialize the correction engine
	log.Printf("Using data directory: %s (shards: %s)", *dataDir, settings.ShardDir)
	correctionEngine := engine.NewEngine(*dataDir, settings, redisClient)
	defer correctionEngine.Stop()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodySize))

	// Setup API routes
	api.SetupRoutes(router, correctionEngine)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
