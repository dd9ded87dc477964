package identity

import (
	"testing"

	"twii-miner/core/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	v, ok := ParseDecimal("1879064384")
	require.True(t, ok)
	assert.Equal(t, uint32(1879064384), v)

	_, ok = ParseDecimal("0x10")
	assert.False(t, ok)
	_, ok = ParseDecimal("")
	assert.False(t, ok)
	_, ok = ParseDecimal("99999999999")
	assert.False(t, ok, "overflows 32 bits")
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0x70003F42", 0x70003F42, false},
		{"70003f42", 0x70003F42, false},
		{" 0X1A ", 0x1A, false},
		{"0x", 0, true},
		{"zz", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitComposite(t *testing.T) {
	id, rank := SplitComposite("1879091345;4")
	assert.Equal(t, uint32(1879091345), id)
	assert.Equal(t, 4, rank)

	for _, in := range []string{"", "1879091345", "abc;4", "1879091345;x", "1;2;3"} {
		id, rank := SplitComposite(in)
		assert.Zero(t, id, in)
		assert.Zero(t, rank, in)
	}
}

func TestGroupForClass(t *testing.T) {
	assert.Equal(t, graph.GroupHunter, GroupForClass("HUNTER"))
	assert.Equal(t, graph.GroupWarden, GroupForClass("warden"))
	assert.Equal(t, graph.GroupMariner, GroupForClass("MARINER"))
	assert.Equal(t, graph.GroupUnknown, GroupForClass("BURGLAR"))
}

func TestResolveDeedReward_PrefersTraits(t *testing.T) {
	r := NewResolver()
	r.AddTrait(10, 1)
	r.AddItemGrant(20, 2)

	assert.Equal(t, []uint32{1}, r.ResolveDeedReward([]uint32{10}, []uint32{20}))
	assert.Equal(t, []uint32{2}, r.ResolveDeedReward([]uint32{11}, []uint32{20}), "falls back to items")
	assert.Empty(t, r.ResolveDeedReward(nil, []uint32{21}))
}

func TestResolver_IndexesAreUnique(t *testing.T) {
	r := NewResolver()
	r.AddItemGrant(5, 1)
	r.AddItemGrant(5, 1)
	r.AddItemGrant(5, 2)
	r.AddItemGrant(3, 1)

	assert.Equal(t, []uint32{1, 2}, r.SkillsForItem(5))
	assert.Equal(t, []uint32{3, 5}, r.Items())

	r.AddDeed(7, 1)
	r.AddDeed(7, 1)
	assert.Equal(t, []uint32{1}, r.SkillsForDeed(7))

	r.AddBarterer(9)
	assert.True(t, r.IsBarterer(9))
	assert.False(t, r.IsBarterer(8))
}
