package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsEventType = "return_stats"

// RedisRecorder publishes every snapshot to a Redis stream.
type RedisRecorder struct {
	client  *redis.Client
	stream  string
	timeout time.Duration
}

// NewRedisRecorder connects to addr (host:port or redis:// URL) and pings it.
func NewRedisRecorder(addr, stream string) (*RedisRecorder, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisRecorder{client: client, stream: stream, timeout: 3 * time.Second}, nil
}

type statsPayload struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Source       string    `json:"source"`
	PriceCount   int       `json:"price_count"`
	Returns      []float64 `json:"returns"`
	Mean         float64   `json:"mean"`
	Volatility   float64   `json:"volatility"`
	VarianceMode string    `json:"variance_mode"`
	Valid        bool      `json:"valid"`
}

// streamValues builds the XADD field map for a snapshot.
func streamValues(snap *Snapshot) (map[string]interface{}, error) {
	st := snap.Stats
	payload, err := json.Marshal(statsPayload{
		ID:           snap.ID,
		Symbol:       snap.Symbol,
		Source:       snap.Source,
		PriceCount:   snap.PriceCount,
		Returns:      st.Returns,
		Mean:         st.Mean,
		Volatility:   st.Volatility,
		VarianceMode: string(st.Mode),
		Valid:        st.Valid(),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"type":    statsEventType,
		"ts":      snap.Time.UTC().Format(time.RFC3339Nano),
		"payload": string(payload),
	}, nil
}

func (r *RedisRecorder) RecordStats(snap *Snapshot) error {
	values, err := streamValues(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.client.XAdd(ctx, &redis.XAddArgs{Stream: r.stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", r.stream, err)
	}
	return nil
}

func (r *RedisRecorder) Close() error {
	return r.client.Close()
}
