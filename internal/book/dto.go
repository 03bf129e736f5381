package book

import (
	"sort"
	"strings"
)

// BookDto is the external representation of a book.
type BookDto struct {
	ISBN      int64       `json:"isbn" validate:"required,gt=0"`
	Title     string      `json:"title" validate:"required"`
	Publisher string      `json:"publisher" validate:"required"`
	Authors   []AuthorDto `json:"authors" validate:"required,min=1,dive"`
}

// AuthorDto is the external representation of an author.
type AuthorDto struct {
	Name      string `json:"name" validate:"required"`
	BirthDate Date   `json:"birthDate"`
}

// normalized trims the names and title so they match the trimmed path parameters
// used to look them up.
func (d BookDto) normalized() BookDto {
	out := d
	out.Title = strings.TrimSpace(d.Title)
	out.Publisher = strings.TrimSpace(d.Publisher)
	if d.Authors != nil {
		out.Authors = make([]AuthorDto, len(d.Authors))
		for i, a := range d.Authors {
			a.Name = strings.TrimSpace(a.Name)
			out.Authors[i] = a
		}
	}
	return out
}

func toBookDto(b Book) BookDto {
	return BookDto{
		ISBN:      b.ISBN,
		Title:     b.Title,
		Publisher: b.PublisherName,
		Authors:   toAuthorDtos(b.Authors),
	}
}

func toBookDtos(books []Book) []BookDto {
	out := make([]BookDto, 0, len(books))
	for _, b := range books {
		out = append(out, toBookDto(b))
	}
	return out
}

func toAuthorDto(a Author) AuthorDto {
	return AuthorDto{Name: a.Name, BirthDate: a.BirthDate}
}

// toAuthorDtos deduplicates by name and orders the result by name.
func toAuthorDtos(authors []Author) []AuthorDto {
	seen := make(map[string]struct{}, len(authors))
	out := make([]AuthorDto, 0, len(authors))
	for _, a := range authors {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		out = append(out, toAuthorDto(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
