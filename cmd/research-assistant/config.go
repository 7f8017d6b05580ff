package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "research-assistant/0.1"
	defaultAddr      = ":8080"
)

func init() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("search.timeout", defaultTimeout)
	viper.SetDefault("search.user_agent", defaultUserAgent)
	viper.SetDefault("search.max_results", search.DefaultMaxResults)

	viper.SetDefault("ai.model", llm.DefaultModel)
	viper.SetDefault("ai.base_url", llm.DefaultBaseURL)
	viper.SetDefault("ai.timeout", defaultTimeout)
	viper.SetDefault("ai.max_retries", 2)

	viper.SetDefault("report.output_dir", "output")
	viper.SetDefault("report.download_dir", "downloads")

	viper.SetDefault("store.path", store.DefaultPath)
	viper.SetDefault("server.addr", defaultAddr)
	viper.SetDefault("log.mode", "development")
}

// loadConfig decodes the merged file, environment, and flag settings.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}
