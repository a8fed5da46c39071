package task_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JeremyDaug/EconomicCalculator-sub004/content"
	"github.com/JeremyDaug/EconomicCalculator-sub004/tag"
	"github.com/JeremyDaug/EconomicCalculator-sub004/task"
	"github.com/JeremyDaug/EconomicCalculator-sub004/utils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `products:
  - name: Wheat
    id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
wants:
  - name: Food
`

const contentYAML = `products:
  - name: Wheat
    tags: [Perishable<030>]
  - name: Flour
    tags: [Consumable]
processes:
  - name: Milling
    tags: [Refiner<Flour>]
    inputs:
      - product: Wheat
        amount: 1
        tags: [Consumed]
species:
  - name: Cattle
    tags: [Need<Grass;1>]
`

func newConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	cat := filepath.Join(dir, "catalog.yaml")
	doc := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(cat, []byte(catalogYAML), 0o644))
	require.NoError(t, os.WriteFile(doc, []byte(contentYAML), 0o644))
	var c config.Config
	c.Input.Catalog.File = cat
	c.Content.Files = []string{doc}
	c.Content.Output = filepath.Join(dir, "out.yaml")
	return c
}

func TestRun(t *testing.T) {
	c := newConfig(t)
	ctx := task.NewContext("test", "", c, nil)
	require.NoError(t, ctx.Run(context.Background()))

	id, err := ctx.Catalog().Resolve(tag.EntityProduct, "Wheat")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())
	_, err = ctx.Catalog().Resolve(tag.EntityProduct, "Flour")
	assert.NoError(t, err)

	res := ctx.Result()
	assert.Len(t, res.Accepted, 4)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "species Cattle", res.Rejected[0].Owner)

	out, err := content.Load(c.Content.Output)
	require.NoError(t, err)
	assert.Equal(t, []string{"Perishable<30>"}, out.Products[0].Tags)
	assert.Equal(t, []string{"Need<Grass;1>"}, out.Species[0].Tags)
}

func TestRunStopOnError(t *testing.T) {
	c := newConfig(t)
	c.Control.StopOnError = true
	err := task.NewContext("test", "", c, nil).Run(context.Background())
	assert.ErrorIs(t, err, tag.ErrParameterTypeMismatch)
}

func TestRunServeWithoutSidecar(t *testing.T) {
	c := newConfig(t)
	c.Control.Serve = true
	assert.Error(t, task.NewContext("test", "", c, nil).Run(context.Background()))
}

func TestInitErrors(t *testing.T) {
	c := newConfig(t)
	c.Content.Files = append(c.Content.Files, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, task.NewContext("test", "", c, nil).Init())

	c = newConfig(t)
	c.Input.Catalog.File = ""
	c.Input.Catalog.DB = "econ"
	c.Input.Catalog.Col = "catalog"
	c.Input.Catalog.OnlyCache = true
	assert.Error(t, task.NewContext("test", t.TempDir(), c, nil).Init())
}
