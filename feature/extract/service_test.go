package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"twii-miner/core/graph"
	"twii-miner/core/override"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixtureOverride = `[[rep]]
id = "0x6FFF43C1"
level = 25
map = [{type = "ERIADOR", x = 1, y = 2}]

[[creep]]
id = "0x6FFF43C4"

[[creep]]
id = "0x6FFF43C4"

[[gen]]
id = "0x70FFFFFF"
`

func writeOverride(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skill_input.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestService_Build(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Override = writeOverride(t, fixtureOverride)

	svc := NewService(cfg, fixtureDocuments(), zap.NewNop())
	g, report, err := svc.Build(context.Background())
	require.NoError(t, err)

	bree := mustSkill(t, g, skillBree)
	assert.Equal(t, graph.StatusFound, bree.Status)
	assert.Equal(t, graph.GroupRep, bree.Group)
	assert.Equal(t, "25", bree.SortLevel)

	creep := mustSkill(t, g, skillCreep)
	assert.Equal(t, graph.StatusMultiFound, creep.Status)

	assert.Equal(t, graph.StatusNotFound, mustSkill(t, g, skillBreeLand).Status)
	assert.Equal(t, graph.StatusNotFound, mustSkill(t, g, skillHunter).Status)

	assert.Len(t, report.New, 2)
	assert.Len(t, report.Ambiguous, 2)
	require.Len(t, report.Orphans, 1)
	assert.Equal(t, "0x70FFFFFF", report.Orphans[0].ID)
	assert.Equal(t, 12, report.Orphans[0].Line)
	assert.Empty(t, report.Unclassified)
}

func TestService_BuildFailsOnInvalidOverride(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Override = writeOverride(t, "[[rep]]\nid = \"0x1\"\nmap = [{type = \"ROHAN\", x = 1}]\n")

	_, _, err := NewService(cfg, fixtureDocuments(), zap.NewNop()).Build(context.Background())
	assert.ErrorIs(t, err, override.ErrInvalidRecord)
}

func TestService_BuildFailsOnBadConfig(t *testing.T) {
	cfg := fixtureConfig()
	cfg.DefaultGroup = "nobody"
	_, _, err := NewService(cfg, fixtureDocuments(), zap.NewNop()).Build(context.Background())
	assert.Error(t, err)

	cfg = fixtureConfig()
	cfg.Blacklist = "12,abc"
	_, err = NewService(cfg, fixtureDocuments(), zap.NewNop()).Extract(context.Background())
	assert.Error(t, err)
}

func TestConfig(t *testing.T) {
	cfg := Config{Root: "data", DefaultGroup: "gen", Blacklist: " 1, 2 ,,"}

	assert.Equal(t, filepath.Join("data", "lore"), cfg.LoreDir())
	assert.Equal(t, filepath.Join("data", "lore", "labels"), cfg.LabelsDir())

	g, err := cfg.Group()
	require.NoError(t, err)
	assert.Equal(t, graph.GroupGen, g)

	ids, err := cfg.BlacklistIDs()
	require.NoError(t, err)
	assert.Equal(t, map[uint32]bool{1: true, 2: true}, ids)
}
