package rules

import (
	"fmt"
	"strings"
)

// Book identifies a rule-source book whose tables the generator draws on
type Book string

const (
	BookCoreRulebook       Book = "core"
	BookStarsOfInequity    Book = "stars-of-inequity"
	BookKoronusBestiary    Book = "koronus-bestiary"
	BookBattlefleetKoronus Book = "battlefleet-koronus"
	BookIntoTheStorm       Book = "into-the-storm"
)

var bookTitles = map[Book]string{
	BookCoreRulebook:       "Rogue Trader Core Rulebook",
	BookStarsOfInequity:    "Stars of Inequity",
	BookKoronusBestiary:    "The Koronus Bestiary",
	BookBattlefleetKoronus: "Battlefleet Koronus",
	BookIntoTheStorm:       "Into the Storm",
}

// AllBooks lists every known book in display order
func AllBooks() []Book {
	return []Book{
		BookCoreRulebook,
		BookStarsOfInequity,
		BookKoronusBestiary,
		BookBattlefleetKoronus,
		BookIntoTheStorm,
	}
}

func (b Book) Title() string {
	if title, ok := bookTitles[b]; ok {
		return title
	}
	return string(b)
}

// ParseBook accepts a book key, case-insensitively
func ParseBook(s string) (Book, error) {
	book := Book(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bookTitles[book]; !ok {
		return "", fmt.Errorf("unknown book %q", s)
	}
	return book, nil
}

// XenosSource identifies a creature generator
type XenosSource string

const (
	XenosSourceStarsOfInequity XenosSource = "stars-of-inequity"
	XenosSourceKoronusBestiary XenosSource = "koronus-bestiary"
)

// AllXenosSources lists every creature generator in a stable order
func AllXenosSources() []XenosSource {
	return []XenosSource{XenosSourceStarsOfInequity, XenosSourceKoronusBestiary}
}

// Book returns the book a creature generator is printed in
func (x XenosSource) Book() Book {
	switch x {
	case XenosSourceKoronusBestiary:
		return BookKoronusBestiary
	default:
		return BookStarsOfInequity
	}
}

func ParseXenosSource(s string) (XenosSource, error) {
	source := XenosSource(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllXenosSources() {
		if source == known {
			return source, nil
		}
	}
	return "", fmt.Errorf("unknown xenos source %q", s)
}

// Reference is a page citation for the table an entity was rolled on
type Reference struct {
	Book  Book   `json:"book,omitempty"`
	Page  int    `json:"page,omitempty"`
	Table string `json:"table,omitempty"`
}

// Ref is shorthand for building a Reference
func Ref(book Book, page int, table string) Reference {
	return Reference{Book: book, Page: page, Table: table}
}

func (r Reference) IsZero() bool {
	return r.Book == "" && r.Page == 0 && r.Table == ""
}

func (r Reference) String() string {
	if r.IsZero() {
		return ""
	}
	s := r.Book.Title()
	if r.Page > 0 {
		s = fmt.Sprintf("%s, p. %d", s, r.Page)
	}
	if r.Table != "" {
		s = fmt.Sprintf("%s (%s)", s, r.Table)
	}
	return s
}
