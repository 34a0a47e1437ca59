// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ardakose/boyama/internal/platform/constants"
)

// Invalidator purges rendered-page cache entries from Redis.
type Invalidator struct {
	client *redis.Client
	logger *slog.Logger
}

// NewInvalidator wires the Redis client used for cache purges.
func NewInvalidator(client *redis.Client, logger *slog.Logger) *Invalidator {
	return &Invalidator{
		client: client,
		logger: logger.With(slog.String("component", "cache_invalidator")),
	}
}

// Invalidate purges every path key in the fan-out and, for each coarse
// tag, every member path of the tag set plus the set itself.
//
// Missing keys are not errors; DEL on an absent key is a no-op. A Redis
// failure is logged and returned, but callers treat it as non-fatal since
// the content mutation is already persisted.
func (inv *Invalidator) Invalidate(ctx context.Context, fanout Fanout) error {
	if len(fanout.Paths) == 0 && len(fanout.Tags) == 0 {
		return nil
	}

	// 1. Fine-grained path keys
	pathKeys := make([]string, 0, len(fanout.Paths))
	for _, path := range fanout.Paths {
		pathKeys = append(pathKeys, constants.RedisPrefixCachePath+path)
	}

	if len(pathKeys) > 0 {
		if err := inv.client.Del(ctx, pathKeys...).Err(); err != nil {
			inv.logger.ErrorContext(ctx, "cache_path_purge_failed",
				slog.Int("key_count", len(pathKeys)),
				slog.Any("error", err),
			)
			return fmt.Errorf("cache: purge path keys: %w", err)
		}
	}

	// 2. Coarse tag sets and their members
	for _, tag := range fanout.Tags {
		setKey := constants.RedisPrefixCacheTag + tag

		members, err := inv.client.SMembers(ctx, setKey).Result()
		if err != nil {
			inv.logger.ErrorContext(ctx, "cache_tag_read_failed",
				slog.String("tag", tag),
				slog.Any("error", err),
			)
			return fmt.Errorf("cache: read tag set %q: %w", tag, err)
		}

		keys := append(members, setKey)
		if err := inv.client.Del(ctx, keys...).Err(); err != nil {
			inv.logger.ErrorContext(ctx, "cache_tag_purge_failed",
				slog.String("tag", tag),
				slog.Int("member_count", len(members)),
				slog.Any("error", err),
			)
			return fmt.Errorf("cache: purge tag %q: %w", tag, err)
		}
	}

	inv.logger.InfoContext(ctx, "cache_invalidated",
		slog.Int("paths", len(fanout.Paths)),
		slog.Int("tags", len(fanout.Tags)),
	)
	return nil
}
