package override

import (
	"errors"
	"fmt"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
)

// ErrInvalidRecord is returned when a record carries an unknown key, a value of the
// wrong type, an unparsable id or an incomplete map location.
var ErrInvalidRecord = errors.New("invalid override record")

// ParseError locates a problem in the override document.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Record is one curated entry. Pointer and Has* fields distinguish "not specified"
// from a zero value, so the reconciler only touches what the curator wrote.
type Record struct {
	Group graph.Group
	ID    uint32
	RawID string
	// Line is the line of the record's [[group]] header or inline table.
	Line int

	Map    []graph.MapLoc
	HasMap bool

	SortLevel *string

	Overlap    []uint32
	HasOverlap bool

	Tag       *string
	MinLevel  *int
	AutoLevel *bool
	Store     *bool
	AutoRep   *bool

	Label     labels.Label
	Zone      labels.Label
	ZoneLabel labels.Label
	Detail    labels.Label
	Acquire   labels.Label
}

// Document is the decoded override document.
type Document struct {
	Path string
	// Records are ordered by line.
	Records []Record
	// LabelTags holds the [labels.<group>] headings.
	LabelTags map[graph.Group]labels.Label
}

// ByID groups record indexes by skill id.
func (d *Document) ByID() map[uint32][]int {
	out := make(map[uint32][]int)
	for i, r := range d.Records {
		out[r.ID] = append(out[r.ID], i)
	}
	return out
}
