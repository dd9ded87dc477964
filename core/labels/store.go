package labels

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"twii-miner/core/xmldoc"
)

// IndirectPrefix marks a value that is itself a key into a label table.
const IndirectPrefix = "key:"

// ErrLocaleMismatch is returned when a label document declares another locale
// than the one it was loaded for.
var ErrLocaleMismatch = errors.New("label document locale mismatch")

// IsIndirect reports whether v is a label-table pointer rather than literal text.
func IsIndirect(v string) bool {
	return strings.HasPrefix(v, IndirectPrefix)
}

// Table maps label keys to text for one document in one locale.
type Table map[string]string

// Store holds every label document loaded during a run, keyed by document name
// ("skills", "factions", ...) and locale. Documents are loaded once.
type Store struct {
	reader xmldoc.Reader
	dir    string
	tables map[string]map[Locale]Table
}

// NewStore creates a store reading label documents from dir/<locale>/<name>.xml.
func NewStore(reader xmldoc.Reader, dir string) *Store {
	return &Store{
		reader: reader,
		dir:    dir,
		tables: make(map[string]map[Locale]Table),
	}
}

// Path returns the location of the named label document for loc.
func (s *Store) Path(name string, loc Locale) string {
	return filepath.Join(s.dir, string(loc), name+".xml")
}

// Load returns the table for the named document in loc, reading it on first use.
// A missing document, a missing <labels> root or a locale attribute that does not
// match loc are load failures.
func (s *Store) Load(name string, loc Locale) (Table, error) {
	if t, ok := s.tables[name][loc]; ok {
		return t, nil
	}

	doc, err := s.reader.Load(s.Path(name, loc))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s labels (%s): %w", name, loc, err)
	}
	root, err := doc.RootElement("labels")
	if err != nil {
		return nil, err
	}
	declared, ok := root.Attr("locale")
	if !ok || Locale(declared) != loc {
		return nil, fmt.Errorf("%s: declared %q, want %q: %w", doc.Path, declared, loc, ErrLocaleMismatch)
	}

	t := make(Table)
	for _, n := range root.Elements("label") {
		key, ok := n.Attr("key")
		if !ok {
			continue
		}
		value, ok := n.Attr("value")
		if !ok {
			continue
		}
		t[key] = value
	}

	if s.tables[name] == nil {
		s.tables[name] = make(map[Locale]Table)
	}
	s.tables[name][loc] = t
	return t, nil
}

// LoadAll loads the named document in every supported locale.
func (s *Store) LoadAll(name string) error {
	for _, loc := range All {
		if _, err := s.Load(name, loc); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the text stored under key in an already loaded table.
func (s *Store) Lookup(name string, loc Locale, key string) (string, bool) {
	v, ok := s.tables[name][loc][key]
	return v, ok
}

// Label collects key from the named document across all loaded locales.
func (s *Store) Label(name, key string) Label {
	out := Label{}
	for _, loc := range All {
		if v, ok := s.Lookup(name, loc, key); ok {
			out.Set(loc, v)
		}
	}
	return out
}

// Text turns a raw lore attribute into a label. Indirect values are looked up in
// the named document; literal values become default-locale text. When a key
// has its own entries in the document they take precedence per locale.
func (s *Store) Text(name, raw, key string) Label {
	if IsIndirect(raw) {
		return s.Label(name, raw)
	}
	out := Literal(raw)
	if key != "" {
		for loc, v := range s.Label(name, key) {
			out.Set(loc, v)
		}
	}
	return out
}
