package output

import (
	"errors"
	"fmt"
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/labels"

	"github.com/Shopify/go-lua"
)

// ErrVerification is returned when a rendered artifact does not load, or loads
// into something other than what the graph describes.
var ErrVerification = errors.New("artifact verification failed")

// Verification is what a rendered SkillData.lua registered when executed.
type Verification struct {
	Skills    map[graph.Group]int
	LabelTags int
}

// Total returns the number of registered skills over all groups.
func (v Verification) Total() int {
	n := 0
	for _, c := range v.Skills {
		n += c
	}
	return n
}

// dictionaryStub stands in for the addon's dictionary classes. Each group table
// forwards to the Go recorders registered on the state.
func dictionaryStub() string {
	var b strings.Builder
	b.WriteString("MapType = { NONE=0, ERIADOR=1, RHOVANION=2, ROHAN=3, GONDOR=4, HARADWAITH=5, CREEP=6 }\n")
	b.WriteString("local Group = {}\nGroup.__index = Group\n")
	b.WriteString("function Group:AddSkill(skill) __recordSkill(self.name, skill) end\n")
	b.WriteString("function Group:AddLabelTag(tag) __recordLabelTag(self.name, tag) end\n")
	b.WriteString("TravelDictionary = {}\n")
	for _, g := range graph.Groups {
		fmt.Fprintf(&b, "TravelDictionary.%[1]s = setmetatable({ name = %[2]s }, Group)\n", g, Quote(g.String()))
	}
	return b.String()
}

// VerifySkillData executes src against a stub dictionary and reports what it
// registered.
func VerifySkillData(src []byte) (Verification, error) {
	v := Verification{Skills: make(map[graph.Group]int)}

	state := lua.NewState()
	lua.OpenLibraries(state)
	state.Register("__recordSkill", func(l *lua.State) int {
		group := graph.ParseGroup(lua.CheckString(l, 1))
		lua.CheckType(l, 2, lua.TypeTable)
		if group == graph.GroupUnknown {
			lua.Errorf(l, "skill registered under unknown group")
		}
		l.Field(2, "id")
		if _, ok := l.ToString(-1); !ok {
			lua.Errorf(l, "skill without id")
		}
		l.Pop(1)
		for _, loc := range labels.All {
			l.Field(2, loc.Upper())
			if !l.IsTable(-1) {
				lua.Errorf(l, "skill without %s table", loc.Upper())
			}
			l.Pop(1)
		}
		v.Skills[group]++
		return 0
	})
	state.Register("__recordLabelTag", func(l *lua.State) int {
		lua.CheckString(l, 1)
		lua.CheckType(l, 2, lua.TypeTable)
		v.LabelTags++
		return 0
	})

	if err := lua.DoString(state, dictionaryStub()); err != nil {
		return v, fmt.Errorf("failed to load dictionary stub: %w", err)
	}
	if err := lua.DoString(state, string(src)); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrVerification, SkillDataFile, err)
	}
	if err := lua.DoString(state, "TravelDictionary:CreateDictionaries()"); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrVerification, SkillDataFile, err)
	}
	return v, nil
}

// VerifyLocaleData executes src and checks that every locale table is present.
func VerifyLocaleData(src []byte) error {
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.DoString(state, string(src)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrVerification, LocaleDataFile, err)
	}

	state.Global("LocaleData")
	if !state.IsTable(-1) {
		return fmt.Errorf("%w: %s: LocaleData is not a table", ErrVerification, LocaleDataFile)
	}
	for _, loc := range labels.All {
		state.Field(-1, loc.Upper())
		ok := state.IsTable(-1)
		state.Pop(1)
		if !ok {
			return fmt.Errorf("%w: %s: missing %s section", ErrVerification, LocaleDataFile, loc.Upper())
		}
	}
	state.Pop(1)
	return nil
}
