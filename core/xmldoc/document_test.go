package xmldoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<skills>
  <travelSkill identifier="1879091345" category="102"/>
  <skill identifier="1" category="97">
    <effect id="9"/>
  </skill>
  <travelSkill identifier="1879091346"/>
</skills>`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "skills", root.Name)
	assert.Len(t, root.Children, 3)

	travel := root.Elements("travelSkill")
	require.Len(t, travel, 2)
	id, ok := travel[0].Attr("identifier")
	assert.True(t, ok)
	assert.Equal(t, "1879091345", id)

	_, ok = travel[1].Attr("category")
	assert.False(t, ok)

	skill := root.First("skill")
	require.NotNil(t, skill)
	assert.NotNil(t, skill.First("effect"))
	assert.Nil(t, root.First("missing"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`<skills><skill></skills>`))
	assert.Error(t, err)
}

func TestFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.xml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	doc, err := FileReader{}.Load(path)
	require.NoError(t, err)

	_, err = doc.RootElement("skills")
	assert.NoError(t, err)

	_, err = doc.RootElement("labels")
	assert.ErrorIs(t, err, ErrMissingRoot)

	_, err = FileReader{}.Load(filepath.Join(dir, "absent.xml"))
	assert.Error(t, err)
}
