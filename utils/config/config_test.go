package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `input:
  uri: mongodb://localhost:27017
  catalog:
    db: econ
    col: entities
content:
  files: [base.yaml, mods.yaml]
control:
  stop_on_error: true
`

func TestLoadFile(t *testing.T) {
	t.Setenv(config.MongoURIEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", c.Input.URI)
	assert.Equal(t, "econ.entities.pb", c.Input.Catalog.GetCachePath())
	assert.Equal(t, []string{"base.yaml", "mods.yaml"}, c.Content.Files)
	assert.True(t, c.Control.StopOnError)
	assert.False(t, c.Control.Serve)
}

func TestLoadData(t *testing.T) {
	t.Setenv(config.MongoURIEnv, "mongodb://override:27017")
	c, err := config.Load("", base64.StdEncoding.EncodeToString([]byte(sample)))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://override:27017", c.Input.URI)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load("", "")
	assert.Error(t, err)
	_, err = config.Load("", "not base64!")
	assert.Error(t, err)
	_, err = config.Load("", base64.StdEncoding.EncodeToString([]byte("unknown_field: 1\n")))
	assert.Error(t, err, "strict parsing rejects unknown fields")
}

func TestCachePath(t *testing.T) {
	p := config.InputPath{DB: "econ", Col: "entities", Cache: "custom.pb"}
	assert.Equal(t, "custom.pb", p.GetCachePath())
	assert.Equal(t, "econ", p.GetDb())
	assert.Equal(t, "entities", p.GetColl())
}
