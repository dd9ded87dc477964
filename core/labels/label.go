package labels

// Label is one piece of text in every locale it is known in.
type Label map[Locale]string

// Resolve returns the text for loc, falling back to the default locale,
// and finally to the empty string.
func Resolve(m Label, loc Locale) string {
	if v := m[loc]; v != "" {
		return v
	}
	return m[Default]
}

// Resolve is the method form of Resolve.
func (m Label) Resolve(loc Locale) string {
	return Resolve(m, loc)
}

// Set stores v for loc. Empty values are ignored so a later pass never blanks
// text written by an earlier one.
func (m Label) Set(loc Locale, v string) {
	if v == "" {
		return
	}
	m[loc] = v
}

// Empty reports whether the label has no text in any locale.
func (m Label) Empty() bool {
	for _, v := range m {
		if v != "" {
			return false
		}
	}
	return true
}

// Literal builds a label that only carries default-locale text.
func Literal(v string) Label {
	m := Label{}
	m.Set(Default, v)
	return m
}

// Clone returns an independent copy.
func (m Label) Clone() Label {
	if m == nil {
		return nil
	}
	out := make(Label, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
