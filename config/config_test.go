package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfig(t *testing.T) {
	req := require.New(t)

	cfg := GetDefaultConfig()
	req.Equal("fs", cfg.Corpus.Source)
	req.Equal(1971, cfg.Scaling.StartYear)
	req.Equal(2017, cfg.Scaling.EndYear)
	req.Equal("RUS", cfg.Scaling.AnchorLow)
	req.Equal("USA", cfg.Scaling.AnchorHigh)
	req.NotEmpty(cfg.Scaling.DBURL)
	req.NotEmpty(cfg.Mongo.URI)
	req.Greater(cfg.Scaling.Workers, 0)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	_, err := LoadAppConfig("definitely_absent_config")
	require.Error(t, err)
}
