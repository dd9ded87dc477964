package graph

import (
	"testing"

	"twii-miner/core/labels"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateSkill_Idempotent(t *testing.T) {
	g := New()

	s1, created := g.FindOrCreateSkill(0x7000A2C1)
	assert.True(t, created)
	s1.Name.Set(labels.EN, "Muster at Thievard's Lodge")

	s2, created := g.FindOrCreateSkill(0x7000A2C1)
	assert.False(t, created)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, g.SkillCount())
}

func TestSkills_UniqueAndOrdered(t *testing.T) {
	g := New()
	for _, id := range []uint32{30, 10, 20, 10, 30} {
		g.FindOrCreateSkill(id)
	}

	skills := g.Skills()
	require.Len(t, skills, 3)
	seen := map[uint32]bool{}
	for i, s := range skills {
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		seen[s.ID] = true
		if i > 0 {
			assert.Less(t, skills[i-1].ID, s.ID)
		}
	}
}

func TestSatellites_Idempotent(t *testing.T) {
	g := New()

	f1, created := g.FindOrCreateFaction(1879091345)
	assert.True(t, created)
	f2, created := g.FindOrCreateFaction(1879091345)
	assert.False(t, created)
	assert.Same(t, f1, f2)

	c1, _ := g.FindOrCreateCurrency(1879255991)
	c2, _ := g.FindOrCreateCurrency(1879255991)
	assert.Same(t, c1, c2)

	n1, _ := g.FindOrCreateNPC(1879000001)
	n2, _ := g.FindOrCreateNPC(1879000001)
	assert.Same(t, n1, n2)

	r1, _ := g.FindOrCreateRepRank("FRIEND")
	r2, _ := g.FindOrCreateRepRank("FRIEND")
	assert.Same(t, r1, r2)

	d1, _ := g.FindOrCreateDeed(5)
	d2, _ := g.FindOrCreateDeed(5)
	assert.Same(t, d1, d2)

	a1, _ := g.FindOrCreateAllegiance(6)
	a2, _ := g.FindOrCreateAllegiance(6)
	assert.Same(t, a1, a2)

	assert.Len(t, g.Factions(), 1)
	assert.Len(t, g.Currencies(), 1)
	assert.Len(t, g.NPCs(), 1)
	assert.Len(t, g.RepRanks(), 1)
	assert.Len(t, g.Deeds(), 1)
	assert.Len(t, g.Allegiances(), 1)
}

func TestAttachBarter_OrderingViolation(t *testing.T) {
	g := New()

	_, err := g.AttachBarter(1, 2, Barter{BartererID: 3, SellFactor: 1})
	assert.ErrorIs(t, err, ErrOrderingViolation, "unknown skill")

	s, _ := g.FindOrCreateSkill(1)
	_, err = g.AttachBarter(1, 2, Barter{BartererID: 3, SellFactor: 1})
	assert.ErrorIs(t, err, ErrOrderingViolation, "skill without acquire for the item")

	s.AcquireByItem(2)
	added, err := g.AttachBarter(1, 2, Barter{BartererID: 3, SellFactor: 1})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = g.AttachBarter(1, 2, Barter{BartererID: 3, SellFactor: 2})
	require.NoError(t, err)
	assert.False(t, added, "second record for the same barterer is ignored")

	a, err := g.AcquireFor(1, 2)
	require.NoError(t, err)
	require.Len(t, a.Barters, 1)
	assert.Equal(t, 1.0, a.Barters[0].SellFactor)
	assert.True(t, a.Barters[0].IsVendor())
}

func TestSetBuyAmount(t *testing.T) {
	g := New()
	s, _ := g.FindOrCreateSkill(1)
	s.AcquireByItem(2)

	assert.ErrorIs(t, g.SetBuyAmount(1, 2, 3, 100), ErrOrderingViolation, "no barter yet")

	_, err := g.AttachBarter(1, 2, Barter{BartererID: 3, SellFactor: 1.5})
	require.NoError(t, err)
	require.NoError(t, g.SetBuyAmount(1, 2, 3, 150))

	a, _ := g.AcquireFor(1, 2)
	assert.Equal(t, int64(150), a.Barters[0].BuyAmt)
}

func TestDeedAcquireFor(t *testing.T) {
	g := New()
	s, _ := g.FindOrCreateSkill(1)

	_, err := g.DeedAcquireFor(1, 9)
	assert.ErrorIs(t, err, ErrOrderingViolation)

	a, created := s.AcquireByDeed(9)
	assert.True(t, created)
	got, err := g.DeedAcquireFor(1, 9)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, created = s.AcquireByDeed(9)
	assert.False(t, created)
}

func TestEffectiveGroup(t *testing.T) {
	tests := []struct {
		name  string
		skill Skill
		want  Group
	}{
		{"persisted wins", Skill{Group: GroupWarden, Category: CategoryCreep}, GroupWarden},
		{"creep category", Skill{Category: CategoryCreep}, GroupCreep},
		{"hunter category", Skill{Category: CategoryHunter}, GroupHunter},
		{"fallback", Skill{Category: CategoryTravel}, GroupRep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.skill.EffectiveGroup(GroupRep))
		})
	}

	s := Skill{Category: CategoryTravel}
	s.EffectiveGroup(GroupRep)
	assert.Equal(t, GroupUnknown, s.Group, "fallback is never persisted")
}

func TestEffectiveMinLevel(t *testing.T) {
	assert.Equal(t, 20, (&Skill{MinLevel: 20, MinLevelInput: 30}).EffectiveMinLevel())
	assert.Equal(t, 30, (&Skill{MinLevelInput: 30}).EffectiveMinLevel())
}

func TestParseNames(t *testing.T) {
	assert.Equal(t, GroupRacial, ParseGroup("racials"))
	assert.Equal(t, GroupUnknown, ParseGroup("racial"))
	assert.Equal(t, "gen", GroupGen.String())
	assert.Equal(t, RegionHaradwaith, ParseRegion("HARADWAITH"))
	assert.Equal(t, RegionInvalid, ParseRegion("MORDOR"))
	assert.Equal(t, "0x70003F42", FormatID(0x70003F42))
	assert.Equal(t, "multi_found", StatusMultiFound.String())
}
