package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webild-pos/internal/catalog"
)

func catalogSnapshotKey(slug string) string {
	return fmt.Sprintf("catalog:%s", strings.ToLower(strings.TrimSpace(slug)))
}

// GetCatalogSnapshot 读取菜单快照缓存，命中后已重建索引
func GetCatalogSnapshot(ctx context.Context, slug string) (*catalog.Snapshot, bool, error) {
	var snapshot catalog.Snapshot
	hit, err := getJSON(ctx, catalogSnapshotKey(slug), &snapshot)
	if err != nil || !hit {
		return nil, false, err
	}
	snapshot.Reindex()
	return &snapshot, true, nil
}

// SetCatalogSnapshot 写入菜单快照缓存
func SetCatalogSnapshot(ctx context.Context, snapshot *catalog.Snapshot, ttl time.Duration) error {
	if snapshot == nil || ttl <= 0 {
		return nil
	}
	return setJSON(ctx, catalogSnapshotKey(snapshot.Store.Slug), snapshot, ttl)
}

// DelCatalogSnapshot 商户数据变更后清除快照缓存
func DelCatalogSnapshot(ctx context.Context, slug string) error {
	if strings.TrimSpace(slug) == "" {
		return nil
	}
	return del(ctx, catalogSnapshotKey(slug))
}
