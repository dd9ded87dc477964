package override

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"twii-miner/core/graph"
	"twii-miner/core/identity"
	"twii-miner/core/labels"
	"twii-miner/core/utils"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

const labelsTable = "labels"

// Load reads and decodes the override document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override document: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes an override document. Any problem rejects the whole document.
func Parse(path string, data []byte) (*Document, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, &ParseError{Path: path, Line: row, Column: col, Message: derr.Error(), Err: err}
		}
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	pos, err := scanPositions(data)
	if err != nil {
		return nil, fmt.Errorf("failed to locate records in %s: %w", path, err)
	}
	doc := &Document{Path: path, LabelTags: make(map[graph.Group]labels.Label)}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		if key == labelsTable {
			if err := decodeLabelTags(path, pos.keys[key], value, doc.LabelTags); err != nil {
				return nil, err
			}
			continue
		}

		group := graph.ParseGroup(key)
		tables, ok := value.([]any)
		if group == graph.GroupUnknown || !ok {
			return nil, invalid(path, pos.keys[key], "unexpected top-level key %q", key)
		}

		for i, item := range tables {
			line := pos.keys[key]
			if i < len(pos.records[key]) {
				line = pos.records[key][i]
			}
			table, ok := item.(map[string]any)
			if !ok {
				return nil, invalid(path, line, "%s entry %d is not a table", key, i+1)
			}
			rec, err := decodeRecord(table)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line, Message: err.Error(), Err: err}
			}
			rec.Group = group
			rec.Line = line
			doc.Records = append(doc.Records, rec)
		}
	}

	// Keys were walked in sorted order, so records sharing a line keep a
	// fixed order too.
	sort.SliceStable(doc.Records, func(i, j int) bool { return doc.Records[i].Line < doc.Records[j].Line })
	return doc, nil
}

// positions holds source lines found by a syntax-level pass over the document.
type positions struct {
	// keys is the first line a top-level key appears on.
	keys map[string]int
	// records is the line of every entry of a top-level array of tables, in
	// document order. Entries come from [[name]] headers or from the inline
	// tables of a top-level name = [ {...} ] array.
	records map[string][]int
}

// scanPositions walks the document with the go-toml parser. The decoder keeps
// arrays of tables in document order, so the k-th position of a name belongs
// to the k-th decoded entry.
func scanPositions(data []byte) (*positions, error) {
	pos := &positions{keys: make(map[string]int), records: make(map[string][]int)}

	var p unstable.Parser
	p.Reset(data)

	line := func(n *unstable.Node) int {
		return p.Shape(n.Raw).Start.Line
	}
	seen := func(name string, l int) {
		if _, ok := pos.keys[name]; !ok {
			pos.keys[name] = l
		}
	}

	// Key/values after any table header belong to that table.
	topLevel := true
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.ArrayTable, unstable.Table:
			topLevel = false
			it := e.Key()
			if !it.Next() {
				continue
			}
			k := it.Node()
			name := string(k.Data)
			seen(name, line(k))
			if e.Kind == unstable.ArrayTable && it.IsLast() {
				pos.records[name] = append(pos.records[name], line(k))
			}
		case unstable.KeyValue:
			if !topLevel {
				continue
			}
			it := e.Key()
			if !it.Next() {
				continue
			}
			k := it.Node()
			name := string(k.Data)
			seen(name, line(k))

			v := e.Value()
			if !it.IsLast() || v.Kind != unstable.Array {
				continue
			}
			elems := v.Children()
			for elems.Next() {
				if n := elems.Node(); n.Kind == unstable.InlineTable {
					pos.records[name] = append(pos.records[name], line(n))
				}
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return pos, nil
}

func invalid(path string, line int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &ParseError{Path: path, Line: line, Message: msg, Err: ErrInvalidRecord}
}

func recordErr(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidRecord)
}

func decodeRecord(t map[string]any) (Record, error) {
	var rec Record
	if _, ok := t["id"]; !ok {
		return rec, recordErr("missing id")
	}

	for key, value := range t {
		switch key {
		case "id":
			s, ok := utils.ToString(value)
			if !ok {
				return rec, recordErr("id must be a string")
			}
			id, err := identity.ParseHex(s)
			if err != nil {
				return rec, recordErr("%v", err)
			}
			rec.ID = id
			rec.RawID = s
		case "map":
			locs, err := decodeMap(value)
			if err != nil {
				return rec, err
			}
			rec.Map = locs
			rec.HasMap = true
		case "level":
			f, ok := utils.ToFloat(value)
			if !ok {
				return rec, recordErr("level must be a number")
			}
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return rec, recordErr("level must be finite")
			}
			s := utils.FormatFloat(f)
			rec.SortLevel = &s
		case "overlap":
			ids, err := decodeOverlap(value)
			if err != nil {
				return rec, err
			}
			rec.Overlap = ids
			rec.HasOverlap = true
		case "tag":
			s, ok := value.(string)
			if !ok {
				return rec, recordErr("tag must be a string")
			}
			rec.Tag = &s
		case "minLevel":
			n, ok := utils.ToInt(value)
			if !ok {
				return rec, recordErr("minLevel must be an integer")
			}
			rec.MinLevel = &n
		case "autoLevel", "store", "autoRep":
			b, ok := utils.ToBool(value)
			if !ok {
				return rec, recordErr("%s must be a boolean", key)
			}
			switch key {
			case "autoLevel":
				rec.AutoLevel = &b
			case "store":
				rec.Store = &b
			default:
				rec.AutoRep = &b
			}
		case "label", "zone", "zoneLabel", "detail", "acquire":
			l, err := decodeLocalized(key, value)
			if err != nil {
				return rec, err
			}
			switch key {
			case "label":
				rec.Label = l
			case "zone":
				rec.Zone = l
			case "zoneLabel":
				rec.ZoneLabel = l
			case "detail":
				rec.Detail = l
			default:
				rec.Acquire = l
			}
		default:
			return rec, recordErr("unknown key %q", key)
		}
	}
	return rec, nil
}

// decodeMap rejects the whole list when any location lacks type, x or y.
func decodeMap(value any) ([]graph.MapLoc, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, recordErr("map must be an array")
	}
	out := make([]graph.MapLoc, 0, len(items))
	for i, item := range items {
		t, ok := item.(map[string]any)
		if !ok {
			return nil, recordErr("map location %d is not a table", i+1)
		}
		var loc graph.MapLoc
		var hasType, hasX, hasY bool
		for k, v := range t {
			switch k {
			case "type":
				s, ok := v.(string)
				if !ok {
					return nil, recordErr("map location %d: type must be a string", i+1)
				}
				loc.Region = graph.ParseRegion(s)
				hasType = loc.Region != graph.RegionInvalid
			case "x":
				loc.X, hasX = utils.ToInt(v)
			case "y":
				loc.Y, hasY = utils.ToInt(v)
			default:
				return nil, recordErr("map location %d: unknown key %q", i+1, k)
			}
		}
		if !hasType || !hasX || !hasY {
			return nil, recordErr("map location %d must have a valid type, x and y", i+1)
		}
		out = append(out, loc)
	}
	return out, nil
}

func decodeOverlap(value any) ([]uint32, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, recordErr("overlap must be an array")
	}
	out := make([]uint32, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, recordErr("overlap ids must be strings")
		}
		id, ok := identity.ParseDecimal(s)
		if !ok {
			return nil, recordErr("overlap id %q is not a decimal id", s)
		}
		out = append(out, id)
	}
	return out, nil
}

func decodeLocalized(key string, value any) (labels.Label, error) {
	t, ok := value.(map[string]any)
	if !ok {
		return nil, recordErr("%s must be a table of locales", key)
	}
	out := labels.Label{}
	for k, v := range t {
		loc, ok := localeKey(k)
		if !ok {
			return nil, recordErr("%s: unknown locale %q", key, k)
		}
		s, ok := v.(string)
		if !ok {
			return nil, recordErr("%s.%s must be a string", key, k)
		}
		out.Set(loc, s)
	}
	return out, nil
}

// localeKey accepts the upper case locale names of the document.
func localeKey(k string) (labels.Locale, bool) {
	for _, loc := range labels.All {
		if loc.Upper() == k {
			return loc, true
		}
	}
	return "", false
}

func decodeLabelTags(path string, line int, value any, into map[graph.Group]labels.Label) error {
	t, ok := value.(map[string]any)
	if !ok {
		return invalid(path, line, "labels must be a table")
	}
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := graph.ParseGroup(name)
		if group == graph.GroupUnknown {
			return invalid(path, line, "labels: unknown group %q", name)
		}
		l, err := decodeLocalized("labels."+name, t[name])
		if err != nil {
			return &ParseError{Path: path, Line: line, Message: err.Error(), Err: err}
		}
		into[group] = l
	}
	return nil
}
