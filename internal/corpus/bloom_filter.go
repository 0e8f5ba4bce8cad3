package corpus

import (
	"fmt"
	"log"
	"strings"

	redisbloom "github.com/RedisBloom/redisbloom-go"
	"github.com/speechscaling/scaling_engine/config"
)

const (
	approxItems     = 100_000
	errorRate       = 0.01
	bloomFilterName = "ingested_docs"
)

// BloomFilter remembers which transcripts have already been ingested so a
// re-run of ingest mode skips them instead of double-inserting.
type BloomFilter struct {
	client *redisbloom.Client
}

func NewRedisBloomFilter(cfg *config.RedisConfig) (*BloomFilter, error) {
	client := redisbloom.NewClient(
		cfg.Host,
		"",
		nil,
	)
	if err := client.Reserve(bloomFilterName, errorRate, approxItems); err != nil {
		if strings.Contains(err.Error(), "item exists") {
			log.Println("Skipping : Bloom filter already reserved")
		} else {
			return nil, fmt.Errorf("could not reserve bloom filter :%w", err)
		}
	}
	return &BloomFilter{
		client,
	}, nil
}

func (r *BloomFilter) Add(docKey string) error {
	_, err := r.client.Add(bloomFilterName, docKey)
	return err
}

func (r *BloomFilter) Exists(docKey string) (bool, error) {
	exists, err := r.client.Exists(bloomFilterName, docKey)
	if err != nil {
		return false, fmt.Errorf("failed to check bloom filter : %w", err)
	}
	return exists, nil
}
