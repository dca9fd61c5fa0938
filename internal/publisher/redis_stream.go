package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Stream names.
const (
	GamesProcessedStream   = "ceres.games.processed"
	RatingsPublishedStream = "ceres.ratings.published"
)

// ErrUnavailable means the breaker is open and the message was dropped.
var ErrUnavailable = errors.New("stream publisher unavailable")

// GameProcessed announces that a game's efficiency was recorded.
type GameProcessed struct {
	GameID      string   `json:"game_id"`
	Sport       string   `json:"sport"`
	Division    int      `json:"division"`
	Date        string   `json:"date"`
	AwayTeam    string   `json:"away_team"`
	HomeTeam    string   `json:"home_team"`
	Source      string   `json:"source"`
	AwayPPP     *float64 `json:"away_ppp,omitempty"`
	HomePPP     *float64 `json:"home_ppp,omitempty"`
	Possessions int      `json:"possessions,omitempty"`
}

// RatingsPublished announces a completed rating run.
type RatingsPublished struct {
	RunID    string `json:"run_id"`
	Sport    string `json:"sport"`
	Division int    `json:"division"`
	Teams    int    `json:"teams"`
	Games    int    `json:"games"`
	Top      string `json:"top,omitempty"`
}

// RedisStreamPublisher publishes events to Redis streams. A circuit breaker
// stops a crawl from paying a Redis timeout for every game once Redis is
// down.
type RedisStreamPublisher struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	maxLen  int64
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client, log logrus.FieldLogger) *RedisStreamPublisher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	settings := gobreaker.Settings{
		Name:        "redis-streams",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Publisher circuit breaker state changed")
		},
	}
	return &RedisStreamPublisher{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(settings),
		maxLen:  100_000,
	}
}

// PublishGameProcessed adds a message to the games stream.
func (p *RedisStreamPublisher) PublishGameProcessed(ctx context.Context, msg GameProcessed) error {
	return p.publish(ctx, GamesProcessedStream, msg)
}

// PublishRatings adds a message to the ratings stream.
func (p *RedisStreamPublisher) PublishRatings(ctx context.Context, msg RatingsPublished) error {
	return p.publish(ctx, RatingsPublishedStream, msg)
}

// State exposes the breaker state for health reporting.
func (p *RedisStreamPublisher) State() string {
	return p.breaker.State().String()
}

func (p *RedisStreamPublisher) publish(ctx context.Context, stream string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", stream, err)
	}
	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			MaxLen: p.maxLen,
			Approx: true,
			Values: map[string]interface{}{
				"data":      string(data),
				"timestamp": time.Now().Unix(),
			},
		}).Err()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s", ErrUnavailable, stream)
	}
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", stream, err)
	}
	return nil
}
