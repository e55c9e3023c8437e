package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cyrup-ai/get.cyrup.ai/types"
)

// search.yaml的内容
type Config struct {
	Search    Search    `yaml:"search"`
	Storage   Storage   `yaml:"storage"`
	Segmenter Segmenter `yaml:"segmenter"`
}

// 与mdBook的book.toml中output.html.search的选项对应
type Search struct {
	LimitResults      int     `yaml:"limit-results"`
	TeaserWordCount   int     `yaml:"teaser-word-count"`
	UseBooleanAnd     bool    `yaml:"use-boolean-and"`
	BoostTitle        float64 `yaml:"boost-title"`
	BoostHierarchy    float64 `yaml:"boost-hierarchy"`
	BoostParagraph    float64 `yaml:"boost-paragraph"`
	Expand            bool    `yaml:"expand"`
	HeadingSplitLevel int     `yaml:"heading-split-level"`
	HashFiles         bool    `yaml:"hash-files"`

	// 词频在字段之间累加，与mdBook生成的索引一致
	CumulativeTermCounts bool `yaml:"cumulative-term-counts"`
	// 在索引中保存原文，搜索结果才有摘要
	SaveDocuments bool `yaml:"save-documents"`
}

type Storage struct {
	Enabled bool   `yaml:"enabled"`
	Folder  string `yaml:"folder"`
	Engine  string `yaml:"engine"`
}

type Segmenter struct {
	Dictionaries  string `yaml:"dictionaries,omitempty"`
	StopTokenFile string `yaml:"stop-token-file,omitempty"`
	Threads       int    `yaml:"threads,omitempty"`
}

// mdBook的默认搜索选项
func Default() *Config {
	return &Config{
		Search: Search{
			LimitResults:         30,
			TeaserWordCount:      30,
			UseBooleanAnd:        false,
			BoostTitle:           2,
			BoostHierarchy:       1,
			BoostParagraph:       1,
			Expand:               true,
			HeadingSplitLevel:    3,
			HashFiles:            false,
			CumulativeTermCounts: true,
			SaveDocuments:        true,
		},
		Storage: Storage{
			Folder: ".searchindex",
			Engine: "bolt",
		},
	}
}

// 在默认值的基础上读入配置文件，path为空时返回默认值
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) Validate() error {
	s := cfg.Search
	switch {
	case s.LimitResults < 0:
		return fmt.Errorf("limit-results must not be negative, got %d", s.LimitResults)
	case s.TeaserWordCount < 0:
		return fmt.Errorf("teaser-word-count must not be negative, got %d", s.TeaserWordCount)
	case s.HeadingSplitLevel < 0 || s.HeadingSplitLevel > 6:
		return fmt.Errorf("heading-split-level must be between 0 and 6, got %d", s.HeadingSplitLevel)
	case s.BoostTitle < 0 || s.BoostHierarchy < 0 || s.BoostParagraph < 0:
		return fmt.Errorf("boosts must not be negative")
	}
	return nil
}

func (cfg *Config) SearchOptions() types.SearchOptions {
	options := types.SearchOptions{
		Bool:   types.BoolOr,
		Expand: cfg.Search.Expand,
		Fields: map[string]types.FieldOptions{
			types.FieldTitle:       {Boost: cfg.Search.BoostTitle},
			types.FieldBody:        {Boost: cfg.Search.BoostParagraph},
			types.FieldBreadcrumbs: {Boost: cfg.Search.BoostHierarchy},
		},
	}
	if cfg.Search.UseBooleanAnd {
		options.Bool = types.BoolAnd
	}
	return options
}

func (cfg *Config) ResultsOptions() types.ResultsOptions {
	return types.ResultsOptions{
		LimitResults:    cfg.Search.LimitResults,
		TeaserWordCount: cfg.Search.TeaserWordCount,
	}
}

func (cfg *Config) IndexerInitOptions() types.IndexerInitOptions {
	options := types.IndexerInitOptions{
		SaveDocuments:         cfg.Search.SaveDocuments,
		CumulativeTermCounts:  cfg.Search.CumulativeTermCounts,
		SegmenterDictionaries: cfg.Segmenter.Dictionaries,
		StopTokenFile:         cfg.Segmenter.StopTokenFile,
	}
	options.Init()
	return options
}

func (cfg *Config) EngineInitOptions() types.EngineInitOptions {
	indexerInitOptions := cfg.IndexerInitOptions()
	searchOptions := cfg.SearchOptions()
	resultsOptions := cfg.ResultsOptions()
	options := types.EngineInitOptions{
		NumSegmenterThreads:     cfg.Segmenter.Threads,
		IndexerInitOptions:      &indexerInitOptions,
		DefaultSearchOptions:    &searchOptions,
		DefaultResultsOptions:   &resultsOptions,
		UsePersistentStorage:    cfg.Storage.Enabled,
		PersistentStorageFolder: cfg.Storage.Folder,
		PersistentStorageEngine: cfg.Storage.Engine,
	}
	options.Init()
	return options
}
