package scaling

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speechscaling/scaling_engine/config"
)

// Storage persists score rows to Postgres. Writes are batched; a NaN
// wordscore is stored as NULL so missing positions survive the round trip as
// missing, not as a sentinel number.
type Storage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(cfg *config.ScalingConfig) (*Storage, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DBURL is empty in config")
	}

	pgConfig, err := pgxpool.ParseConfig(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	pgConfig.MaxConns = int32(cfg.PoolSize)
	pgConfig.MinConns = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pgConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}

	return &Storage{
		pool: pool,
	}, nil
}

func (s *Storage) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createScoresTable); err != nil {
		return fmt.Errorf("failed to create scores table: %w", err)
	}
	return nil
}

func (s *Storage) UpsertScores(ctx context.Context, rows []ScoreRow) error {
	const maxBatchSize = 1000

	for i := 0; i < len(rows); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := &pgx.Batch{}
		for _, row := range rows[i:end] {
			var score interface{}
			if !math.IsNaN(row.Wordscore) {
				score = row.Wordscore
			}
			batch.Queue(upsertScore, row.Country, row.Session, row.Year, int(row.Role), score)
		}

		results := s.pool.SendBatch(ctx, batch)
		for j := 0; j < batch.Len(); j++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("error upserting score in batch [%d-%d]: %w", i, end, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("error closing batch: %w", err)
		}
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
