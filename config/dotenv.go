package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const EnvPrefix = "SEARCHINDEX_"

type envSetter func(cfg *Config, value string) error

func intSetter(field func(*Config) *int) envSetter {
	return func(cfg *Config, value string) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func floatSetter(field func(*Config) *float64) envSetter {
	return func(cfg *Config, value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(cfg *Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	}
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(cfg *Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

var envSetters = map[string]envSetter{
	"LIMIT_RESULTS":       intSetter(func(c *Config) *int { return &c.Search.LimitResults }),
	"TEASER_WORD_COUNT":   intSetter(func(c *Config) *int { return &c.Search.TeaserWordCount }),
	"USE_BOOLEAN_AND":     boolSetter(func(c *Config) *bool { return &c.Search.UseBooleanAnd }),
	"BOOST_TITLE":         floatSetter(func(c *Config) *float64 { return &c.Search.BoostTitle }),
	"BOOST_HIERARCHY":     floatSetter(func(c *Config) *float64 { return &c.Search.BoostHierarchy }),
	"BOOST_PARAGRAPH":     floatSetter(func(c *Config) *float64 { return &c.Search.BoostParagraph }),
	"EXPAND":              boolSetter(func(c *Config) *bool { return &c.Search.Expand }),
	"HEADING_SPLIT_LEVEL": intSetter(func(c *Config) *int { return &c.Search.HeadingSplitLevel }),
	"HASH_FILES":          boolSetter(func(c *Config) *bool { return &c.Search.HashFiles }),
	"STORAGE_ENABLED":     boolSetter(func(c *Config) *bool { return &c.Storage.Enabled }),
	"STORAGE_FOLDER":      stringSetter(func(c *Config) *string { return &c.Storage.Folder }),
	"STORAGE_ENGINE":      stringSetter(func(c *Config) *string { return &c.Storage.Engine }),
	"DICTIONARIES":        stringSetter(func(c *Config) *string { return &c.Segmenter.Dictionaries }),
	"STOP_TOKEN_FILE":     stringSetter(func(c *Config) *string { return &c.Segmenter.StopTokenFile }),
}

// 用SEARCHINDEX_*变量覆盖配置，进程环境变量优先，其次是envFile（可以不存在）
func (cfg *Config) ApplyEnv(envFile string) error {
	dotenv := map[string]string{}
	if envFile != "" {
		var err error
		dotenv, err = godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("cannot read dotenv file %s: %w", envFile, err)
		}
	}

	for key, set := range envSetters {
		name := EnvPrefix + key
		value, found := os.LookupEnv(name)
		if !found {
			value, found = dotenv[name]
		}
		if !found || value == "" {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, value, err)
		}
	}
	return cfg.Validate()
}
