package scaling

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/speechscaling/scaling_engine/config"
)

const scaledYearsKey = "scaled_years"

// Progress records which years have been fitted and persisted, so an
// interrupted run resumes without redoing completed years. A nil Progress
// disables resume: every year is considered pending and completions are not
// recorded.
type Progress struct {
	client *redis.Client
}

func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       0,
	})
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("error pinging the redis : %w", err)
	}
	return client, nil
}

func NewProgress(client *redis.Client) *Progress {
	return &Progress{client: client}
}

func (p *Progress) IsDone(ctx context.Context, year int) bool {
	if p == nil || p.client == nil {
		return false
	}
	done, err := p.client.SIsMember(ctx, scaledYearsKey, strconv.Itoa(year)).Result()
	if err != nil {
		log.Printf("Failed to check progress for year %d: %v", year, err)
		return false
	}
	return done
}

func (p *Progress) MarkDone(ctx context.Context, year int) {
	if p == nil || p.client == nil {
		return
	}
	if err := p.client.SAdd(ctx, scaledYearsKey, strconv.Itoa(year)).Err(); err != nil {
		log.Printf("Failed to record progress for year %d: %v", year, err)
	}
}

// Reset clears recorded progress so the next run refits every year.
func (p *Progress) Reset(ctx context.Context) error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Del(ctx, scaledYearsKey).Err()
}
