package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Asset serving modes. This is the single source of truth for how clip and
// thumbnail URLs are composed; it is resolved once at process start and never
// re-detected at request time.
const (
	AssetModeLocal   = "local"
	AssetModeStorage = "storage"
)

// SiteConfig holds the content-site settings loaded from site.yaml and
// overridable with TAPEDECK_-prefixed environment variables
// (e.g. TAPEDECK_ASSET_MODE=storage).
type SiteConfig struct {
	AssetMode        string        `koanf:"asset_mode" default:"local"`
	StorageBaseURL   string        `koanf:"storage_base_url"`
	ClipsBucket      string        `koanf:"clips_bucket" default:"clips"`
	ThumbnailsBucket string        `koanf:"thumbnails_bucket" default:"thumbnails"`
	ClipsDir         string        `koanf:"clips_dir" default:"./public/clips"`
	ThumbnailsDir    string        `koanf:"thumbnails_dir" default:"./public/thumbnails"`
	DataDir          string        `koanf:"data_dir" default:"./data"`
	OutlinePath      string        `koanf:"outline_path" default:"./content/film-outline.md"`
	CacheTTL         time.Duration `koanf:"cache_ttl" default:"1m"`
}

const envPrefix = "TAPEDECK_"

func siteConfigFilePath() string {
	if p := os.Getenv("SITE_CONFIG"); p != "" {
		return p
	}
	return "./site.yaml"
}

func loadSiteConfig(path string) (*SiteConfig, error) {
	site := &SiteConfig{}
	if err := defaults.Set(site); err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to load site config: %s", path)
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", site); err != nil {
		return nil, errors.WithStack(err)
	}

	if site.AssetMode != AssetModeLocal && site.AssetMode != AssetModeStorage {
		return nil, errors.Errorf("invalid asset_mode %q: must be %q or %q", site.AssetMode, AssetModeLocal, AssetModeStorage)
	}
	if site.AssetMode == AssetModeStorage && site.StorageBaseURL == "" {
		return nil, errors.New("storage_base_url is required when asset_mode is storage")
	}

	return site, nil
}
