package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/2beens/gymdemos/pkg"

	"github.com/google/renameio/v2"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const metaSuffix = ".meta"

var _ Cache = (*DiskCache)(nil)

// DiskCache keeps every asset as a file named after the sha256 of its URL,
// next to a small JSON sidecar with the content type.
type DiskCache struct {
	mutex    sync.RWMutex
	rootPath string
	fetcher  *Fetcher
}

type diskMeta struct {
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Size        int       `json:"size"`
	StoredAt    time.Time `json:"storedAt"`
}

func NewDiskCache(rootPath string, fetcher *Fetcher) (*DiskCache, error) {
	if rootPath == "" {
		return nil, errors.New("asset dir cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	return &DiskCache{
		rootPath: rootPath,
		fetcher:  fetcher,
	}, nil
}

// Has reports whether both files of an entry are present. It does not read
// them; Read is the only check that the bytes are servable.
func (c *DiskCache) Has(_ context.Context, url string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, path := range []string{c.metaPath(url), c.dataPath(url)} {
		exists, err := pkg.PathExists(path, false)
		if err != nil {
			log.Errorf("disk cache: stat [%s]: %s", url, err)
			return false
		}
		if !exists {
			return false
		}
	}
	return true
}

func (c *DiskCache) Put(ctx context.Context, url string) bool {
	asset, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warnf("disk cache: fetch [%s]: %s", url, err)
		return false
	}

	if err := c.store(asset); err != nil {
		log.Errorf("disk cache: store [%s]: %s", url, err)
		return false
	}

	log.Debugf("disk cache: stored [%s], %d bytes", url, len(asset.Data))
	return true
}

func (c *DiskCache) store(asset *Asset) error {
	metaBytes, err := json.Marshal(diskMeta{
		URL:         asset.URL,
		ContentType: asset.ContentType,
		Size:        len(asset.Data),
		StoredAt:    asset.StoredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if err := renameio.WriteFile(c.dataPath(asset.URL), asset.Data, 0o644); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := renameio.WriteFile(c.metaPath(asset.URL), metaBytes, 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	return nil
}

func (c *DiskCache) Read(_ context.Context, url string) (*Asset, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	metaBytes, err := os.ReadFile(c.metaPath(url))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Errorf("disk cache: read meta [%s]: %s", url, err)
		}
		return nil, false
	}

	var meta diskMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		log.Errorf("disk cache: unmarshal meta [%s]: %s", url, err)
		return nil, false
	}

	data, err := os.ReadFile(c.dataPath(url))
	if err != nil {
		log.Errorf("disk cache: read data [%s]: %s", url, err)
		return nil, false
	}
	if len(data) != meta.Size {
		log.Errorf("disk cache: [%s] size mismatch, want %d, got %d", url, meta.Size, len(data))
		return nil, false
	}

	return &Asset{
		URL:         url,
		ContentType: meta.ContentType,
		Data:        data,
		StoredAt:    meta.StoredAt,
	}, true
}

func (c *DiskCache) SizeEstimateBytes(_ context.Context) int64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var total int64
	if err := filepath.WalkDir(c.rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	}); err != nil {
		log.Errorf("disk cache: walk [%s]: %s", c.rootPath, err)
	}

	return total
}

func (c *DiskCache) DeleteAll(_ context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, err := os.ReadDir(c.rootPath)
	if err != nil {
		return fmt.Errorf("read asset dir: %w", err)
	}

	var errs error
	for _, entry := range entries {
		errs = multierr.Append(errs, os.RemoveAll(filepath.Join(c.rootPath, entry.Name())))
	}

	return errs
}

func (c *DiskCache) dataPath(url string) string {
	return filepath.Join(c.rootPath, fileName(url))
}

func (c *DiskCache) metaPath(url string) string {
	return c.dataPath(url) + metaSuffix
}

func fileName(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
