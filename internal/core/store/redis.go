package store

import (
	"context"
	"fmt"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 為後端的食譜儲存層
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 創建 Redis 儲存層並測試連線
func NewRedisStore(cfg *config.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("食譜儲存層已初始化",
		zap.String("位址", cfg.RedisAddr),
		zap.String("鍵前綴", cfg.KeyPrefix),
	)

	return &RedisStore{
		client: client,
		prefix: cfg.KeyPrefix,
	}, nil
}

// key 生成儲存鍵
func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

// Save 以 r.ID 為鍵寫入食譜
func (s *RedisStore) Save(ctx context.Context, r common.Recipe) error {
	if r.ID == "" {
		return fmt.Errorf("recipe id is required")
	}

	// 序列化食譜
	data, err := common.ToJSON(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	// 食譜為長期資料，不設過期時間
	if err := s.client.Set(ctx, s.key(r.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set recipe: %w", err)
	}

	return nil
}

// Get 讀取單筆食譜
func (s *RedisStore) Get(ctx context.Context, id string) (common.Recipe, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogStoreMiss("redis", id)
			return common.Recipe{}, ErrNotFound
		}
		return common.Recipe{}, fmt.Errorf("failed to get recipe: %w", err)
	}

	var r common.Recipe
	if err := common.ParseJSONBytes(data, &r); err != nil {
		return common.Recipe{}, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}

	common.LogStoreHit("redis", id)
	return r, nil
}

// List 回傳全部食譜，依建立時間排序
// 集合規模預期為數十到低數百筆，KEYS + MGET 足夠
func (s *RedisStore) List(ctx context.Context) ([]common.Recipe, error) {
	keys, err := s.client.Keys(ctx, s.prefix+":*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe keys: %w", err)
	}
	if len(keys) == 0 {
		return []common.Recipe{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}

	recipes := make([]common.Recipe, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// 鍵在 KEYS 與 MGET 之間被刪除
			continue
		}
		var r common.Recipe
		if err := common.ParseJSONBytes([]byte(raw), &r); err != nil {
			common.LogWarn("略過無法解析的食譜資料", zap.Error(err))
			continue
		}
		recipes = append(recipes, r)
	}

	sortByCreation(recipes)
	return recipes, nil
}

// Delete 刪除單筆食譜
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
