package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/javfg/indico/config"
)

// Client Redis 客户端封装
// 当前用于楼栋聚合结果缓存与接口限流；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 楼栋聚合缓存 ──
// 键按 (地点, 是否含全部房间) 区分；房间/设备写操作后需失效

const buildingsCachePrefix = "buildings:"

func buildingsKey(locationID uint, withRooms bool) string {
	return fmt.Sprintf("%s%d:%t", buildingsCachePrefix, locationID, withRooms)
}

// GetBuildingsCache 读取楼栋聚合缓存；未命中时返回 (nil, nil)
func (c *Client) GetBuildingsCache(ctx context.Context, locationID uint, withRooms bool) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, buildingsKey(locationID, withRooms)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// SetBuildingsCache 写入楼栋聚合缓存
func (c *Client) SetBuildingsCache(ctx context.Context, locationID uint, withRooms bool, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 缓存关闭
	}
	return c.rdb.Set(ctx, buildingsKey(locationID, withRooms), payload, ttl).Err()
}

// InvalidateBuildingsCache 失效某地点的全部楼栋聚合缓存
func (c *Client) InvalidateBuildingsCache(ctx context.Context, locationID uint) error {
	return c.rdb.Del(ctx,
		buildingsKey(locationID, true),
		buildingsKey(locationID, false),
	).Err()
}

// ── 接口限流 ──

// CheckRateLimit 基于 Redis 有序集合的滑动窗口限流
// 返回 true 表示放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if countCmd.Val() >= int64(limit) {
		return false, nil
	}

	pipe = c.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
