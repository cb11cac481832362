package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"themisai-backend/config"
	"themisai-backend/geocoder"
	"themisai-backend/handlers"
	"themisai-backend/llm"
	"themisai-backend/logger"
	"themisai-backend/metrics"
	"themisai-backend/models"
	"themisai-backend/repository"
	"themisai-backend/service"
	"themisai-backend/storage"
	"themisai-backend/vectorindex"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	logger.SetDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	// Initialize database connection
	db, err := initPostgres(ctx, cfg.Database.URL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	defer db.Close()

	// Initialize storage
	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("storage initialized", "type", cfg.Storage.Type)

	// Initialize model clients
	provider, err := llm.NewProvider(ctx, cfg.Chat, cfg.Embedder)
	if err != nil {
		return fmt.Errorf("failed to initialize model provider: %w", err)
	}
	defer provider.Close()

	chat, err := provider.Chat()
	if err != nil {
		return err
	}
	legalEmbedder, err := provider.Embedder(cfg.Embedder.Model)
	if err != nil {
		return err
	}
	lawyerEmbedder, err := provider.Embedder(cfg.LawyerIndex.EmbedModel)
	if err != nil {
		return err
	}

	// Load both corpora; a dimension mismatch is fatal here rather than per request
	legalCorpus, err := loadCorpus[models.LegalChunk](ctx, db, store, cfg.LegalIndex)
	if err != nil {
		return fmt.Errorf("failed to load legal index: %w", err)
	}
	lawyerCorpus, err := loadCorpus[models.Lawyer](ctx, db, store, cfg.LawyerIndex.IndexConfig)
	if err != nil {
		return fmt.Errorf("failed to load lawyer index: %w", err)
	}
	log.Info("indexes loaded", "legal_chunks", legalCorpus.Len(), "lawyers", lawyerCorpus.Len())

	legalSearch, err := vectorindex.NewAdapter(legalEmbedder, legalCorpus)
	if err != nil {
		return fmt.Errorf("legal index: %w", err)
	}
	lawyerSearch, err := vectorindex.NewAdapter(lawyerEmbedder, lawyerCorpus)
	if err != nil {
		return fmt.Errorf("lawyer index: %w", err)
	}

	nominatim, err := geocoder.NewNominatim(
		geocoder.WithBaseURL(cfg.Geocoder.BaseURL),
		geocoder.WithUserAgent(cfg.Geocoder.UserAgent),
		geocoder.WithCountryCodes(cfg.Geocoder.CountryCodes),
		geocoder.WithTimeout(cfg.Geocoder.Timeout),
		geocoder.WithCacheSize(cfg.Geocoder.CacheSize),
		geocoder.WithMinInterval(cfg.Geocoder.MinInterval),
		geocoder.WithLogger(log.With("component", "geocoder")),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize geocoder: %w", err)
	}

	recorder := metrics.NewRecorder()

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize services
	ragService := service.NewRAGService(
		service.RAGWithRetriever(legalSearch),
		service.RAGWithChat(chat),
		service.RAGWithAssembler(service.NewContextAssembler(cfg.Context.MaxChars, cfg.Context.DocumentMaxChars)),
		service.RAGWithTopK(cfg.LegalIndex.TopK),
		service.RAGWithModel(cfg.Chat.Model),
		service.RAGWithTemperature(cfg.Chat.Temperature),
		service.RAGWithMaxTokens(cfg.Chat.MaxTokens, cfg.Chat.DocumentMaxTokens),
		service.RAGWithTimeout(cfg.Chat.GenerationTimeout),
		service.RAGWithLogger(log.With("component", "rag")),
		service.RAGWithMetrics(recorder),
	)

	lawyerService := service.NewLawyerService(
		service.LawyerWithSearcher(lawyerSearch),
		service.LawyerWithGeocoder(nominatim),
		service.LawyerWithTopK(cfg.LawyerIndex.TopK),
		service.LawyerWithSearchPoolK(cfg.LawyerIndex.SearchPoolK),
		service.LawyerWithAlpha(cfg.LawyerIndex.Alpha),
		service.LawyerWithGeocodePolicy(service.GeocodePolicy(cfg.LawyerIndex.GeocodeFailurePolicy)),
		service.LawyerWithLogger(log.With("component", "lawyers")),
		service.LawyerWithMetrics(recorder),
	)

	documentService := service.NewDocumentService(
		service.DocumentWithStore(documentRepo),
		service.DocumentWithStorage(store),
		service.DocumentWithMaxChars(cfg.Context.PerDocumentMaxChars),
		service.DocumentWithLogger(log.With("component", "documents")),
	)

	classifier := service.NewIntentClassifier(chat,
		service.ClassifierWithModel(cfg.Chat.IntentModel),
		service.ClassifierWithTimeout(cfg.Chat.ClassificationTimeout),
		service.ClassifierWithMaxTokens(cfg.Chat.ClassificationMaxTokens),
		service.ClassifierWithLogger(log.With("component", "intent")),
	)

	router := service.NewRouter(
		service.RouterWithClassifier(classifier),
		service.RouterWithAnswerer(ragService),
		service.RouterWithRecommender(lawyerService),
		service.RouterWithMessages(service.Messages{Sapa: cfg.Messages.Sapa, NonPidana: cfg.Messages.NonPidana}),
		service.RouterWithLogger(log.With("component", "router")),
		service.RouterWithMetrics(recorder),
	)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(router, profileRepo, documentService, log)
	lawyerHandler := handlers.NewLawyerHandler(lawyerService, profileRepo, log)
	documentHandler := handlers.NewDocumentHandler(documentService, log)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/health", handlers.Health(legalCorpus, lawyerCorpus))
	r.GET("/metrics", recorder.GinHandler())

	api := r.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.POST("/lawyers/recommend", lawyerHandler.Recommend)
		api.POST("/documents", documentHandler.Upload)
	}

	log.Info("server starting", "port", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}

// loadCorpus pairs the metadata file with either the flat index file or a pgvector table
func loadCorpus[T any](ctx context.Context, db *pgxpool.Pool, store storage.Storage, cfg config.IndexConfig) (*vectorindex.Corpus[T], error) {
	records, err := vectorindex.LoadRecords[T](ctx, store, cfg.MetadataKey)
	if err != nil {
		return nil, err
	}

	var index vectorindex.Searcher
	switch cfg.Backend {
	case config.BackendPgvector:
		index, err = repository.NewVectorRepository(ctx, db, cfg.PgvectorTable)
	default:
		index, err = vectorindex.LoadFlatIndex(ctx, store, cfg.IndexKey)
	}
	if err != nil {
		return nil, err
	}
	return vectorindex.NewCorpus(index, records)
}

func initPostgres(ctx context.Context, connString string, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connection established")
	return pool, nil
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
