package repository

import (
	"assessment_engine/internal/model"
	"assessment_engine/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogKeyPrefix = "assessment:catalog:evaluation:"

// CatalogCache 评测定义的 Redis 旁路缓存，Redis 不可用时回落到数据库
type CatalogCache struct {
	Repo  *EvaluationRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewCatalogCache(repo *EvaluationRepository, rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Repo: repo, Redis: rdb, TTL: ttl}
}

func catalogKey(id uint) string {
	return fmt.Sprintf("%s%d", catalogKeyPrefix, id)
}

func (c *CatalogCache) GetEvaluation(ctx context.Context, id uint) (*model.Evaluation, error) {
	if c.Redis == nil {
		return c.Repo.GetEvaluation(ctx, id)
	}

	val, err := c.Redis.Get(ctx, catalogKey(id)).Result()
	if err == nil {
		var e model.Evaluation
		if err := json.Unmarshal([]byte(val), &e); err == nil {
			return &e, nil
		}
		logger.Log.Warn("discarding undecodable catalog entry", zap.Uint("evaluationId", id))
	} else if err != redis.Nil {
		logger.Log.Warn("catalog cache read failed", zap.Uint("evaluationId", id), zap.Error(err))
	}

	e, err := c.Repo.GetEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(e); err == nil {
		if err := c.Redis.Set(ctx, catalogKey(id), b, c.TTL).Err(); err != nil {
			logger.Log.Warn("catalog cache write failed", zap.Uint("evaluationId", id), zap.Error(err))
		}
	}
	return e, nil
}

func (c *CatalogCache) Invalidate(ctx context.Context, id uint) {
	if c.Redis == nil {
		return
	}
	if err := c.Redis.Del(ctx, catalogKey(id)).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidate failed", zap.Uint("evaluationId", id), zap.Error(err))
	}
}
