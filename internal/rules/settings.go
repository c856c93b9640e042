package rules

// Settings is the host-owned configuration consumed by the generator.
// It is never part of a saved workspace.
type Settings struct {
	Books          map[Book]bool
	XenosSources   map[XenosSource]bool
	ShowReferences bool
}

// DefaultSettings enables every book and creature generator
func DefaultSettings() Settings {
	s := Settings{
		Books:          make(map[Book]bool),
		XenosSources:   make(map[XenosSource]bool),
		ShowReferences: true,
	}
	for _, b := range AllBooks() {
		s.Books[b] = true
	}
	for _, x := range AllXenosSources() {
		s.XenosSources[x] = true
	}
	return s
}

// BookEnabled reports whether tables from b may be rolled on.
// The core rulebook is always available.
func (s Settings) BookEnabled(b Book) bool {
	if b == BookCoreRulebook {
		return true
	}
	return s.Books[b]
}

// XenosSourceEnabled requires both the generator and its book
func (s Settings) XenosSourceEnabled(x XenosSource) bool {
	return s.XenosSources[x] && s.BookEnabled(x.Book())
}

// AvailableXenosSources returns the enabled generators in stable order
func (s Settings) AvailableXenosSources() []XenosSource {
	var sources []XenosSource
	for _, x := range AllXenosSources() {
		if s.XenosSourceEnabled(x) {
			sources = append(sources, x)
		}
	}
	return sources
}

// Citation renders r for display, or "" when references are hidden
func (s Settings) Citation(r Reference) string {
	if !s.ShowReferences {
		return ""
	}
	return r.String()
}

// WithBook returns a copy of s with b switched on or off
func (s Settings) WithBook(b Book, enabled bool) Settings {
	out := s.clone()
	out.Books[b] = enabled
	return out
}

// WithXenosSource returns a copy of s with x switched on or off
func (s Settings) WithXenosSource(x XenosSource, enabled bool) Settings {
	out := s.clone()
	out.XenosSources[x] = enabled
	return out
}

func (s Settings) clone() Settings {
	out := Settings{
		Books:          make(map[Book]bool, len(s.Books)),
		XenosSources:   make(map[XenosSource]bool, len(s.XenosSources)),
		ShowReferences: s.ShowReferences,
	}
	for k, v := range s.Books {
		out.Books[k] = v
	}
	for k, v := range s.XenosSources {
		out.XenosSources[k] = v
	}
	return out
}
