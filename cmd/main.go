package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/speechscaling/scaling_engine/config"
	"github.com/speechscaling/scaling_engine/internal/corpus"
	"github.com/speechscaling/scaling_engine/internal/report"
	"github.com/speechscaling/scaling_engine/internal/scaling"
	"github.com/speechscaling/scaling_engine/internal/textproc"
	"github.com/speechscaling/scaling_engine/models"
	"github.com/speechscaling/scaling_engine/pkg/scores"
)

func main() {
	var (
		configFile = flag.String("config", "scaler.yaml", "Path to configuration file")
		mode       = flag.String("mode", "scale", "Mode: ingest, scale, report or serve")
		workers    = flag.Int("workers", 0, "Number of worker goroutines (overrides config)")
		corpusDir  = flag.String("corpus", "", "Transcript directory (overrides config)")
		reset      = flag.Bool("reset", false, "Clear recorded scaling progress before running")
	)
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configFile)
	if err != nil {
		log.Printf("Failed to load configuration from %s: %v", *configFile, err)
		log.Println("Using default configuration...")
		cfg = config.GetDefaultConfig()
	}

	if *workers > 0 {
		cfg.Scaling.Workers = *workers
	}
	if *corpusDir != "" {
		cfg.Corpus.Dir = *corpusDir
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	switch *mode {
	case "ingest":
		runIngest(ctx, cfg)

	case "scale":
		runScale(ctx, cfg, *reset)

	case "report":
		runReport(ctx, cfg)

	case "serve":
		runServe(cfg)

	default:
		log.Fatalf("Unknown mode: %s. Use ingest, scale, report or serve.", *mode)
	}
}

func runIngest(ctx context.Context, cfg *config.AppConfig) {
	roles, err := corpus.LoadRoleTable(cfg.Corpus.RolesFile)
	if err != nil {
		log.Fatalf("Failed to load speaker roles: %v", err)
	}
	log.Printf("Loaded %d speaker role entries", len(roles))

	c, err := corpus.LoadDirectory(cfg.Corpus.Dir, roles)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Printf("Loaded %d transcripts from %s", c.Size(), cfg.Corpus.Dir)

	mongoClient, err := corpus.NewMongoClient(ctx, &cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	var dedup *corpus.BloomFilter
	if cfg.Corpus.DedupIngest {
		dedup, err = corpus.NewRedisBloomFilter(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize ingest dedup filter: %v", err)
		}
	}

	batchSize := cfg.Corpus.BatchSize
	if batchSize <= 0 {
		batchSize = 200
	}

	var batch []*models.Document
	inserted, skipped := 0, 0
	for i := range c.Documents {
		doc := &c.Documents[i]
		doc.TokenCount = len(textproc.Tokenize(doc.RawText))
		if dedup != nil {
			exists, err := dedup.Exists(doc.Key())
			if err != nil {
				log.Fatalf("Dedup check failed for %s: %v", doc.Key(), err)
			}
			if exists {
				skipped++
				continue
			}
		}
		batch = append(batch, doc)
		if len(batch) >= batchSize {
			if err := flushBatch(mongoClient, dedup, batch); err != nil {
				log.Fatalf("Failed to ingest batch: %v", err)
			}
			inserted += len(batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		if err := flushBatch(mongoClient, dedup, batch); err != nil {
			log.Fatalf("Failed to ingest batch: %v", err)
		}
		inserted += len(batch)
	}

	log.Printf("Ingest complete: %d documents inserted, %d skipped as duplicates", inserted, skipped)
}

func flushBatch(client *corpus.MongoClient, dedup *corpus.BloomFilter, batch []*models.Document) error {
	if err := client.AddBatchDocuments(batch); err != nil {
		return err
	}
	if dedup == nil {
		return nil
	}
	for _, doc := range batch {
		if err := dedup.Add(doc.Key()); err != nil {
			log.Printf("Failed to record %s in dedup filter: %v", doc.Key(), err)
		}
	}
	return nil
}

func runScale(ctx context.Context, cfg *config.AppConfig, reset bool) {
	c, err := loadCorpus(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Printf("Corpus loaded: %d documents across %d years", c.Size(), len(c.Years()))

	storage, err := scaling.NewPostgresStorage(&cfg.Scaling)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer storage.Close()

	if err := storage.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	var progress *scaling.Progress
	if cfg.Redis.Enabled {
		redisClient, err := scaling.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		progress = scaling.NewProgress(redisClient)
		if reset {
			if err := progress.Reset(ctx); err != nil {
				log.Printf("Failed to reset progress: %v", err)
			}
		}
	}

	runner := scaling.NewRunner(c, &cfg.Scaling, storage, progress)

	start := time.Now()
	table, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Scaling run failed: %v", err)
	}
	log.Printf("Scaling complete: %d score rows in %s", len(table), time.Since(start))
}

func loadCorpus(ctx context.Context, cfg *config.AppConfig) (*corpus.Corpus, error) {
	if cfg.Corpus.Source == "mongo" {
		mongoClient, err := corpus.NewMongoClient(ctx, &cfg.Mongo)
		if err != nil {
			return nil, err
		}
		defer mongoClient.Disconnect()
		return mongoClient.LoadAll(cfg.Corpus.BatchSize)
	}

	roles, err := corpus.LoadRoleTable(cfg.Corpus.RolesFile)
	if err != nil {
		log.Printf("Failed to load speaker roles: %v", err)
		log.Println("Continuing without role metadata...")
		roles = nil
	}
	return corpus.LoadDirectory(cfg.Corpus.Dir, roles)
}

func runReport(ctx context.Context, cfg *config.AppConfig) {
	reporter, err := report.NewReporter(cfg.Report.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer reporter.Close()

	records, err := reporter.FetchScores(ctx, cfg.Scaling.StartYear, cfg.Scaling.EndYear)
	if err != nil {
		log.Fatalf("Failed to fetch scores: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("No scores found. Run scale mode first.")
	}

	report.RenderTable(os.Stdout, records)

	if cfg.Report.CSVPath != "" {
		if err := report.ExportCSV(cfg.Report.CSVPath, records); err != nil {
			log.Fatalf("Failed to export CSV: %v", err)
		}
		log.Printf("Exported %d rows to %s", len(records), cfg.Report.CSVPath)
	}
}

func runServe(cfg *config.AppConfig) {
	reporter, err := report.NewReporter(cfg.API.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer reporter.Close()

	scoresAPI := scores.NewScoresAPI(reporter, &cfg.Scaling)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	scoresAPI.RegisterRoutes(app)

	go func() {
		log.Printf("Starting scores API on %s", cfg.API.HTTPAddr)
		if err := app.Listen(cfg.API.HTTPAddr); err != nil {
			log.Fatalf("Fiber app failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Fiber shutdown failed: %v", err)
	}

	log.Println("Server exited properly")
}
