package reconcile

import (
	"testing"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
	"twii-miner/core/override"

	"github.com/stretchr/testify/assert"
)

func TestRules_CoverEveryCuratedField(t *testing.T) {
	fields := map[string]Precedence{}
	for _, r := range Rules {
		_, dup := fields[r.Field]
		assert.False(t, dup, "field %s listed twice", r.Field)
		fields[r.Field] = r.Precedence
	}

	assert.Equal(t, FillIfUnknown, fields["group"])
	for _, f := range []string{"map", "overlap", "level", "tag", "minLevelInput", "store",
		"autoLevel", "autoRep", "label", "zone", "zoneLabel", "detail", "acquire"} {
		assert.Equal(t, OverrideWins, fields[f], f)
	}
}

func TestMerge_EmptyRecordChangesNothing(t *testing.T) {
	s := &graph.Skill{ID: 1, Group: graph.GroupHunter, SortLevel: "10", Tag: "camp", StoreLP: true}
	before := *s

	changed := Merge(s, &override.Record{ID: 1})
	assert.Empty(t, changed)
	assert.Equal(t, before, *s)
}

func TestMerge_AllFields(t *testing.T) {
	s := &graph.Skill{ID: 1, MinLevel: 40}
	s.Label = labels.Label{labels.DE: "alt"}
	r := &override.Record{
		ID:         1,
		Group:      graph.GroupRacial,
		Map:        []graph.MapLoc{{Region: graph.RegionNone}},
		HasMap:     true,
		Overlap:    []uint32{5},
		HasOverlap: true,
		SortLevel:  strPtr("15"),
		Tag:        strPtr("bree"),
		MinLevel:   intPtr(10),
		Store:      boolPtr(true),
		AutoLevel:  boolPtr(true),
		AutoRep:    boolPtr(false),
		Label:      labels.Label{labels.EN: "Bree"},
		Zone:       labels.Label{labels.EN: "Bree-land"},
		ZoneLabel:  labels.Label{labels.EN: "Bree-land zone"},
		Detail:     labels.Label{labels.FR: "Brie"},
		Acquire:    labels.Label{labels.EN: "Racial"},
	}

	changed := Merge(s, r)
	assert.Len(t, changed, len(Rules))

	assert.Equal(t, graph.GroupRacial, s.Group)
	assert.Equal(t, []uint32{5}, s.OverlapIDs)
	assert.Equal(t, "15", s.SortLevel)
	assert.Equal(t, "bree", s.Tag)
	assert.Equal(t, 10, s.MinLevelInput)
	assert.Equal(t, 40, s.EffectiveMinLevel(), "parsed level still wins")
	assert.True(t, s.StoreLP)
	assert.True(t, s.AutoLevel)
	assert.False(t, s.AutoRep)
	assert.Equal(t, "Bree", s.Label.Resolve(labels.EN))
	assert.Equal(t, "alt", s.Label.Resolve(labels.DE), "locales absent from the record are kept")
	assert.Equal(t, "Brie", s.Detail.Resolve(labels.FR))
	assert.Equal(t, "Bree-land", s.Zone.Resolve(labels.RU))
	assert.Equal(t, "Racial", s.AcquireDesc.Resolve(labels.EN))

	r.Map[0].X = 99
	assert.Equal(t, 0, s.MapList[0].X, "merged slices are copies")
}
