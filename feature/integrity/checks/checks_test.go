package checks

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
	"twii-miner/core/storage/mocks"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/extract"
	"twii-miner/feature/output"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func completeRoot(cfg extract.Config) xmldoc.MemReader {
	docs := xmldoc.MemReader{}
	for _, d := range extract.LoreDocuments {
		docs[filepath.Join(cfg.LoreDir(), d.File)] = "<" + d.Root + "/>"
	}
	for _, name := range extract.LabelDocuments {
		for _, loc := range labels.All {
			docs[filepath.Join(cfg.LabelsDir(), string(loc), name+".xml")] = `<labels locale="` + string(loc) + `"/>`
		}
	}
	return docs
}

func TestCheckDataRoot(t *testing.T) {
	cfg := extract.Config{Root: "data"}
	want := len(extract.LoreDocuments) + len(extract.LabelDocuments)*len(labels.All)

	t.Run("complete", func(t *testing.T) {
		report := CheckDataRoot(completeRoot(cfg), cfg)
		assert.True(t, report.OK())
		assert.Equal(t, want, report.Checked)
	})

	t.Run("missing and invalid", func(t *testing.T) {
		docs := completeRoot(cfg)
		delete(docs, filepath.Join(cfg.LoreDir(), "barters.xml"))
		docs[filepath.Join(cfg.LoreDir(), "npcs.xml")] = "<characters/>"
		docs[filepath.Join(cfg.LabelsDir(), "ru", "deeds.xml")] = `<labels locale="en"/>`

		report := CheckDataRoot(docs, cfg)
		assert.False(t, report.OK())
		assert.Equal(t, want, report.Checked)
		assert.Equal(t, []string{filepath.Join(cfg.LoreDir(), "barters.xml")}, report.Missing)
		require.Len(t, report.Invalid, 2)
		assert.Equal(t, filepath.Join(cfg.LoreDir(), "npcs.xml"), report.Invalid[0].Path)
		assert.Equal(t, filepath.Join(cfg.LabelsDir(), "ru", "deeds.xml"), report.Invalid[1].Path)
	})
}

func TestFixDataRoot(t *testing.T) {
	cfg := extract.Config{Root: t.TempDir()}
	require.NoError(t, os.MkdirAll(cfg.LoreDir(), 0o755))

	created, err := FixDataRoot(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, created, 1+len(labels.All), "lore already existed")

	for _, dir := range RequiredDirs(cfg) {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	created, err = FixDataRoot(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, created)
}

func skillData() []byte {
	g := graph.New()
	s, _ := g.FindOrCreateSkill(0x70003F41)
	s.Category = graph.CategoryTravel
	s.Group = graph.GroupRep
	s.Name = labels.Literal("Return to Bree")
	return output.RenderSkillData(g, graph.GroupGen)
}

func TestCheckBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("published", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(true, nil)
		client.On("ListObjects", ctx, "addon", minio.ListObjectsOptions{Prefix: "travel/", Recursive: true}).
			Return(mocks.Objects("travel/LocaleData.lua", "travel/SkillData.lua", "travel/old.lua", "travel/report.json"))
		client.On("GetObject", ctx, "addon", "travel/SkillData.lua", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader(string(skillData()))), nil)

		report, err := CheckBucket(ctx, client, "addon", "travel")
		require.NoError(t, err)
		assert.True(t, report.OK())
		assert.Empty(t, report.Missing)
		assert.Equal(t, []string{"travel/old.lua"}, report.Stale)
		assert.Equal(t, 1, report.Skills)
	})

	t.Run("missing artifacts", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(true, nil)
		client.On("ListObjects", ctx, "addon", minio.ListObjectsOptions{Recursive: true}).
			Return(mocks.Objects("LocaleData.lua"))

		report, err := CheckBucket(ctx, client, "addon", "")
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Equal(t, []string{output.SkillDataFile, output.ReportFile}, report.Missing)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broken skill data", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(true, nil)
		client.On("ListObjects", ctx, "addon", mock.Anything).
			Return(mocks.Objects("SkillData.lua", "LocaleData.lua", "report.json"))
		client.On("GetObject", ctx, "addon", "SkillData.lua", minio.GetObjectOptions{}).
			Return(io.NopCloser(strings.NewReader("function (")), nil)

		report, err := CheckBucket(ctx, client, "addon", "")
		require.NoError(t, err)
		assert.False(t, report.OK())
		assert.Contains(t, report.Error, "artifact verification failed")
	})

	t.Run("no bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(false, nil)

		_, err := CheckBucket(ctx, client, "addon", "")
		assert.ErrorContains(t, err, "does not exist")
	})
}

func TestFixBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("creates bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(false, nil)
		client.On("MakeBucket", ctx, "addon", minio.MakeBucketOptions{}).Return(nil)

		require.NoError(t, FixBucket(ctx, client, "addon", nil, zap.NewNop()))
		client.AssertExpectations(t)
	})

	t.Run("removes stale objects", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(true, nil)
		client.On("RemoveObjects", ctx, "addon", mock.Anything, minio.RemoveObjectsOptions{}).
			Return(mocks.RemoveErrors()).Once()

		require.NoError(t, FixBucket(ctx, client, "addon", []string{"travel/old.lua"}, zap.NewNop()))
		client.AssertExpectations(t)
	})

	t.Run("remove failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "addon").Return(true, nil)
		client.On("RemoveObjects", ctx, "addon", mock.Anything, mock.Anything).
			Return(mocks.RemoveErrors(minio.RemoveObjectError{ObjectName: "travel/old.lua", Err: errors.New("denied")}))

		err := FixBucket(ctx, client, "addon", []string{"travel/old.lua"}, zap.NewNop())
		assert.ErrorContains(t, err, "failed to remove travel/old.lua")
	})
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

var showColumns = regexp.QuoteMeta("SHOW COLUMNS FROM `travel_skills`")

func columnRows(skip string, override map[string]string) *sqlmock.Rows {
	types := map[string]string{
		"id": "int unsigned", "hex_id": "varchar(10)", "grp": "varchar(16)", "category": "int unsigned",
		"name_en": "varchar(255)", "name_de": "varchar(255)", "name_fr": "varchar(255)", "name_ru": "varchar(255)",
		"min_level": "bigint", "sort_level": "varchar(16)", "faction_id": "int unsigned", "faction_rank": "bigint",
		"acquire_count": "bigint", "status": "varchar(16)",
	}
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, col := range []string{
		"id", "hex_id", "grp", "category", "name_en", "name_de", "name_fr", "name_ru",
		"min_level", "sort_level", "faction_id", "faction_rank", "acquire_count", "status",
	} {
		if col == skip {
			continue
		}
		typ := types[col]
		if o, ok := override[col]; ok {
			typ = o
		}
		rows.AddRow(col, typ, "NO", "", nil, "")
	}
	return rows
}

func TestCheckDatabase(t *testing.T) {
	t.Run("matched", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(showColumns).WillReturnRows(columnRows("", nil))

		report, err := CheckDatabase(db)
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Empty(t, report.MissingColumns)
		assert.Empty(t, report.TypeMismatches)
	})

	t.Run("drift", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(showColumns).WillReturnRows(columnRows("status", map[string]string{"min_level": "varchar(8)"}))

		report, err := CheckDatabase(db)
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, []string{"status"}, report.MissingColumns)
		require.Len(t, report.TypeMismatches, 1)
		assert.Contains(t, report.TypeMismatches[0], "min_level")
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(showColumns).WillReturnError(errors.New("table doesn't exist"))

		report, err := CheckDatabase(db)
		require.NoError(t, err)
		assert.False(t, report.Matched)
		require.Len(t, report.Errors, 1)
	})

	t.Run("nil db", func(t *testing.T) {
		_, err := CheckDatabase(nil)
		assert.Error(t, err)
	})
}
