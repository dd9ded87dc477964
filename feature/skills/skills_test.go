package skills

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
	"twii-miner/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBuilder struct {
	calls atomic.Int32
	err   error
}

func (b *stubBuilder) Build(context.Context) (*graph.Graph, *reconcile.Report, error) {
	b.calls.Add(1)
	if b.err != nil {
		return nil, nil, b.err
	}

	g := graph.New()
	bree, _ := g.FindOrCreateSkill(0x70003F41)
	bree.Category = graph.CategoryTravel
	bree.Group = graph.GroupRep
	bree.Status = graph.StatusFound
	bree.Name = labels.Literal("Return to Bree")

	creep, _ := g.FindOrCreateSkill(0x7000A2C1)
	creep.Category = graph.CategoryCreep
	creep.Name = labels.Literal("Return to Gramsfoot")

	gen, _ := g.FindOrCreateSkill(0x7000A2C2)
	gen.Category = graph.CategoryTravel
	gen.Name = labels.Literal("Somewhere")

	report := &reconcile.Report{
		New:     []reconcile.Entry{{ID: "0x7000A2C1", Name: "Return to Gramsfoot", Group: "creep"}},
		Summary: reconcile.Summary{Skills: 3, Found: 1, New: 2},
	}
	return g, report, nil
}

func setupTestApp(t *testing.T, builder *stubBuilder) *fiber.App {
	t.Helper()
	app := fiber.New()
	feature := NewFeature(builder, "data", graph.GroupGen, time.Hour, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestFeature(t *testing.T) {
	f := NewFeature(&stubBuilder{}, "data", graph.GroupRep, time.Minute, zap.NewNop())
	assert.Equal(t, "skills", f.Name())
	assert.True(t, f.IsEnabled())
}

func TestHandleList(t *testing.T) {
	builder := &stubBuilder{}
	app := setupTestApp(t, builder)

	resp, err := app.Test(httptest.NewRequest("GET", "/skills", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.EqualValues(t, 3, body["count"])
	skills := body["skills"].([]any)
	first := skills[0].(map[string]any)
	assert.Equal(t, "0x70003F41", first["id"])
	assert.Equal(t, "rep", first["group"])
	assert.Equal(t, "gen", skills[2].(map[string]any)["group"], "unresolved group uses the fallback")

	resp, err = app.Test(httptest.NewRequest("GET", "/skills?group=creep", nil))
	require.NoError(t, err)
	assert.EqualValues(t, 1, decode(t, resp.Body)["count"])

	resp, err = app.Test(httptest.NewRequest("GET", "/skills?status=not_found", nil))
	require.NoError(t, err)
	assert.EqualValues(t, 2, decode(t, resp.Body)["count"])

	assert.Equal(t, int32(1), builder.calls.Load(), "cached between requests")
}

func TestHandleList_BadFilter(t *testing.T) {
	app := setupTestApp(t, &stubBuilder{})

	for _, target := range []string{"/skills?group=wizard", "/skills?status=lost"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, target)
	}
}

func TestHandleGet(t *testing.T) {
	app := setupTestApp(t, &stubBuilder{})

	tests := []struct {
		target string
		status int
	}{
		{"/skills/0x7000A2C1", 200},
		{"/skills/1879089857", 200},
		{"/skills/0x7FFFFFFF", 404},
		{"/skills/0xZZ", 400},
		{"/skills/bree", 400},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, tt.target)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/skills/0x7000A2C1", nil))
	require.NoError(t, err)
	body := decode(t, resp.Body)
	assert.Equal(t, "creep", body["group"])
	assert.Equal(t, "not_found", body["status"])
}

func TestHandleReport(t *testing.T) {
	app := setupTestApp(t, &stubBuilder{})

	resp, err := app.Test(httptest.NewRequest("GET", "/report", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Len(t, body["new"], 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/report?format=yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "id: \"0x7000A2C1\"")
}

func TestHandleRebuild(t *testing.T) {
	builder := &stubBuilder{}
	app := setupTestApp(t, builder)

	_, err := app.Test(httptest.NewRequest("GET", "/skills", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("POST", "/skills/rebuild", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "rebuilt", decode(t, resp.Body)["status"])
	assert.Equal(t, int32(2), builder.calls.Load())
}

func TestBuildFailure(t *testing.T) {
	builder := &stubBuilder{err: errors.New("stage vendors: missing document")}
	app := setupTestApp(t, builder)

	for _, target := range []string{"/skills", "/skills/0x70003F41", "/report"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode, target)
	}
	assert.Equal(t, int32(3), builder.calls.Load(), "failed builds are not cached")
}
