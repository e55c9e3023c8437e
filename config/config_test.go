package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cyrup-ai/get.cyrup.ai/types"
	"github.com/cyrup-ai/get.cyrup.ai/utils"
)

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	utils.Expect(t, "{30 30}", cfg.ResultsOptions())

	options := cfg.SearchOptions()
	utils.Expect(t, "OR", options.Bool)
	utils.Expect(t, "true", options.Expand)
	utils.Expect(t, "map[body:{1} breadcrumbs:{1} title:{2}]", options.Fields)

	// 与索引文件的默认值一致
	defaults := types.DefaultSearchOptions()
	utils.Expect(t, fmt.Sprint(defaults.Fields), options.Fields)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	data := "search:\n" +
		"  limit-results: 10\n" +
		"  use-boolean-and: true\n" +
		"  boost-hierarchy: 0\n" +
		"storage:\n" +
		"  enabled: true\n" +
		"  engine: kv\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	utils.Expect(t, "10", cfg.Search.LimitResults)
	utils.Expect(t, "30", cfg.Search.TeaserWordCount)
	utils.Expect(t, "AND", cfg.SearchOptions().Bool)
	utils.Expect(t, "0", cfg.SearchOptions().Fields[types.FieldBreadcrumbs].Boost)

	options := cfg.EngineInitOptions()
	utils.Expect(t, "true kv .searchindex", fmt.Sprint(options.UsePersistentStorage, " ",
		options.PersistentStorageEngine, " ", options.PersistentStorageFolder))
	utils.Expect(t, "true", options.IndexerInitOptions.CumulativeTermCounts)
	utils.Expect(t, "[title body breadcrumbs]", options.IndexerInitOptions.Fields)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{
		"syntax.yaml":   "search: [",
		"negative.yaml": "search:\n  limit-results: -1\n",
		"level.yaml":    "search:\n  heading-split-level: 7\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	cfg := Default()
	cfg.Search.HashFiles = true
	cfg.Segmenter.Threads = 2
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	utils.Expect(t, "true", loaded.Search.HashFiles)
	utils.Expect(t, "2", loaded.EngineInitOptions().NumSegmenterThreads)
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	data := "# comment\nSEARCHINDEX_LIMIT_RESULTS=5\nSEARCHINDEX_EXPAND=false\nSEARCHINDEX_STORAGE_ENGINE=kv\n"
	if err := os.WriteFile(envFile, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	// 环境变量优先于 .env 文件
	t.Setenv("SEARCHINDEX_LIMIT_RESULTS", "7")
	t.Setenv("SEARCHINDEX_BOOST_TITLE", "3.5")

	cfg := Default()
	if err := cfg.ApplyEnv(envFile); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	utils.Expect(t, "7", cfg.Search.LimitResults)
	utils.Expect(t, "false", cfg.Search.Expand)
	utils.Expect(t, "3.5", cfg.Search.BoostTitle)
	utils.Expect(t, "kv", cfg.Storage.Engine)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("SEARCHINDEX_TEASER_WORD_COUNT", "many")
	if err := Default().ApplyEnv(""); err == nil {
		t.Error("expected error")
	}

	t.Setenv("SEARCHINDEX_TEASER_WORD_COUNT", "-3")
	if err := Default().ApplyEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected validation error")
	}
}
