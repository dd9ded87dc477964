package graph

import (
	"fmt"
	"strings"
)

// Category is the raw skill category found in the lore documents.
type Category uint32

const (
	CategoryNone   Category = 0
	CategoryHunter Category = 48
	CategoryCreep  Category = 97
	CategoryTravel Category = 102
)

// Group is the class or usage grouping a skill is listed under.
type Group int

const (
	GroupUnknown Group = iota
	GroupHunter
	GroupWarden
	GroupMariner
	GroupRacial
	GroupGen
	GroupRep
	GroupCreep
)

// Groups lists the resolved groups in output order.
var Groups = []Group{GroupHunter, GroupWarden, GroupMariner, GroupRacial, GroupGen, GroupRep, GroupCreep}

var groupNames = map[Group]string{
	GroupHunter:  "hunter",
	GroupWarden:  "warden",
	GroupMariner: "mariner",
	GroupRacial:  "racials",
	GroupGen:     "gen",
	GroupRep:     "rep",
	GroupCreep:   "creep",
}

// String returns the name used by the override document and the addon.
func (g Group) String() string {
	if n, ok := groupNames[g]; ok {
		return n
	}
	return "UNKNOWN"
}

// MarshalText renders the group by name.
func (g Group) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ParseGroup maps a group name back to a Group. Unknown names yield GroupUnknown.
func ParseGroup(name string) Group {
	name = strings.ToLower(strings.TrimSpace(name))
	for g, n := range groupNames {
		if n == name {
			return g
		}
	}
	return GroupUnknown
}

// Region is the map a location belongs to.
type Region int

const (
	RegionInvalid Region = iota
	RegionNone
	RegionEriador
	RegionRhovanion
	RegionRohan
	RegionGondor
	RegionHaradwaith
	RegionCreep
)

var regionNames = map[Region]string{
	RegionNone:       "NONE",
	RegionEriador:    "ERIADOR",
	RegionRhovanion:  "RHOVANION",
	RegionRohan:      "ROHAN",
	RegionGondor:     "GONDOR",
	RegionHaradwaith: "HARADWAITH",
	RegionCreep:      "CREEP",
}

func (r Region) String() string {
	if n, ok := regionNames[r]; ok {
		return n
	}
	return "NONE"
}

// MarshalText renders the region by name.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRegion maps an override region name to a Region, or RegionInvalid.
func ParseRegion(name string) Region {
	for r, n := range regionNames {
		if n == name {
			return r
		}
	}
	return RegionInvalid
}

// MapLoc is one point on a map. It is only ever stored fully populated.
type MapLoc struct {
	Region Region `json:"region"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// Status is the reconciliation outcome of a skill against the override document.
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
	StatusMultiFound
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusMultiFound:
		return "multi_found"
	default:
		return "not_found"
	}
}

// MarshalText renders the status by name in JSON and YAML reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FormatID renders an entity id the way the addon and the override document spell it.
func FormatID(id uint32) string {
	return fmt.Sprintf("0x%08X", id)
}
