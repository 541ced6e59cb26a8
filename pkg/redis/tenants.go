package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

// HashReader is the subset of the redis client used by TenantSource.
type HashReader interface {
	HGetAll(ctx context.Context, key string) *goredis.MapStringStringCmd
}

// TenantSource reads the clinic registry from a Redis hash. Each field is a
// subdomain; the value is either a bare slug or {"slug":"...","name":"..."}.
type TenantSource struct {
	rdb HashReader
	key string
}

func NewTenantSource(rdb HashReader, key string) *TenantSource {
	if key == "" {
		key = TenantsKey
	}
	return &TenantSource{rdb: rdb, key: key}
}

func (s *TenantSource) Name() string { return "redis" }

func (s *TenantSource) Load(ctx context.Context) ([]tenancy.Tenant, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}

	out := make([]tenancy.Tenant, 0, len(fields))
	for sub, raw := range fields {
		t, err := decodeTenant(sub, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subdomain < out[j].Subdomain })
	return out, nil
}

func decodeTenant(sub, raw string) (tenancy.Tenant, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return tenancy.Tenant{Subdomain: sub, Slug: raw}, nil
	}

	var v struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return tenancy.Tenant{}, fmt.Errorf("decode tenant %q: %w", sub, err)
	}
	return tenancy.Tenant{Subdomain: sub, Slug: v.Slug, Name: v.Name}, nil
}

// Subscribe calls onChange for every message on channel until ctx is done.
func Subscribe(ctx context.Context, rdb *goredis.Client, channel string, onChange func()) error {
	if channel == "" {
		channel = TenantsChannel
	}

	pubsub := rdb.Subscribe(ctx, channel)
	// wait for the subscription to be confirmed before reporting success
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				slog.Debug("tenant registry change received",
					slog.String("channel", msg.Channel),
					slog.String("payload", msg.Payload),
				)
				onChange()
			}
		}
	}()

	return nil
}

// Notify publishes a registry change so every instance reloads.
func Notify(ctx context.Context, rdb *goredis.Client, channel, origin string) error {
	if channel == "" {
		channel = TenantsChannel
	}
	return rdb.Publish(ctx, channel, origin).Err()
}
