package book

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

var _ BookService = (*Service)(nil)

// Service provides book-related business logic.
type Service struct {
	store  Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new book service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddBook stores a new book, reusing or creating its publisher and authors.
// It returns false without modifying anything if the ISBN is already taken.
// Surrounding whitespace in names and the title is dropped.
func (s *Service) AddBook(ctx context.Context, dto BookDto) (bool, error) {
	dto = dto.normalized()
	err := s.store.InTx(ctx, TxReadWrite, func(tx Tx) error {
		exists, err := tx.Books().ExistsByISBN(ctx, dto.ISBN)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyExists
		}

		publisher, err := tx.Publishers().FindOrCreate(ctx, dto.Publisher)
		if err != nil {
			return err
		}

		authors := make([]Author, 0, len(dto.Authors))
		seen := make(map[string]struct{}, len(dto.Authors))
		for _, a := range dto.Authors {
			if _, ok := seen[a.Name]; ok {
				continue
			}
			seen[a.Name] = struct{}{}
			stored, err := tx.Authors().FindOrCreate(ctx, Author{Name: a.Name, BirthDate: a.BirthDate})
			if err != nil {
				return err
			}
			authors = append(authors, stored)
		}

		return tx.Books().Insert(ctx, Book{
			ISBN:          dto.ISBN,
			Title:         dto.Title,
			PublisherName: publisher.Name,
			Authors:       authors,
		})
	})
	if errors.Is(err, ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "book added", "isbn", dto.ISBN, "publisher", dto.Publisher, "authors", len(dto.Authors))
	return true, nil
}

// FindBookByISBN returns the book with the given ISBN.
func (s *Service) FindBookByISBN(ctx context.Context, isbn int64) (BookDto, error) {
	var out BookDto
	err := s.store.InTx(ctx, TxReadOnly, func(tx Tx) error {
		b, err := tx.Books().FindByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		out = toBookDto(b)
		return nil
	})
	if err != nil {
		return BookDto{}, err
	}
	return out, nil
}

// RemoveBook deletes the book and returns it as it was before deletion.
func (s *Service) RemoveBook(ctx context.Context, isbn int64) (BookDto, error) {
	var out BookDto
	err := s.store.InTx(ctx, TxReadWrite, func(tx Tx) error {
		b, err := tx.Books().FindByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		out = toBookDto(b)
		return tx.Books().Delete(ctx, isbn)
	})
	if err != nil {
		return BookDto{}, err
	}

	s.logger.InfoContext(ctx, "book removed", "isbn", isbn)
	return out, nil
}

// UpdateBook changes the title of the book and returns the updated book.
func (s *Service) UpdateBook(ctx context.Context, isbn int64, title string) (BookDto, error) {
	var out BookDto
	err := s.store.InTx(ctx, TxReadWrite, func(tx Tx) error {
		b, err := tx.Books().FindByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		if err := tx.Books().UpdateTitle(ctx, isbn, title); err != nil {
			return err
		}
		b.Title = title
		out = toBookDto(b)
		return nil
	})
	if err != nil {
		return BookDto{}, err
	}

	s.logger.InfoContext(ctx, "book title updated", "isbn", isbn)
	return out, nil
}

// FindBooksByAuthor returns the books listing the author. An unknown author yields an empty slice.
func (s *Service) FindBooksByAuthor(ctx context.Context, authorName string) ([]BookDto, error) {
	var out []BookDto
	err := s.store.InTx(ctx, TxReadOnly, func(tx Tx) error {
		books, err := tx.Books().FindByAuthorName(ctx, authorName)
		if err != nil {
			return err
		}
		out = toBookDtos(books)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindBooksByPublisher returns the books of the publisher. An unknown publisher yields an empty slice.
func (s *Service) FindBooksByPublisher(ctx context.Context, publisherName string) ([]BookDto, error) {
	var out []BookDto
	err := s.store.InTx(ctx, TxReadOnly, func(tx Tx) error {
		books, err := tx.Books().FindByPublisherName(ctx, publisherName)
		if err != nil {
			return err
		}
		out = toBookDtos(books)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindBookAuthors returns the distinct authors of the book.
func (s *Service) FindBookAuthors(ctx context.Context, isbn int64) ([]AuthorDto, error) {
	var out []AuthorDto
	err := s.store.InTx(ctx, TxReadOnly, func(tx Tx) error {
		b, err := tx.Books().FindByISBN(ctx, isbn)
		if err != nil {
			return err
		}
		out = toAuthorDtos(b.Authors)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindPublishersByAuthor returns the names of publishers that published the author.
// The author is not required to exist.
func (s *Service) FindPublishersByAuthor(ctx context.Context, authorName string) ([]string, error) {
	var out []string
	err := s.store.InTx(ctx, TxReadOnly, func(tx Tx) error {
		names, err := tx.Publishers().FindNamesByAuthor(ctx, authorName)
		if err != nil {
			return err
		}
		out = names
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// RemoveAuthor deletes the author and every book listing them, co-authored books included.
func (s *Service) RemoveAuthor(ctx context.Context, authorName string) (AuthorDto, error) {
	var (
		out     AuthorDto
		removed int64
	)
	err := s.store.InTx(ctx, TxReadWrite, func(tx Tx) error {
		a, err := tx.Authors().FindByName(ctx, authorName)
		if err != nil {
			return err
		}
		out = toAuthorDto(a)

		removed, err = tx.Books().DeleteByAuthorName(ctx, authorName)
		if err != nil {
			return err
		}
		return tx.Authors().DeleteByName(ctx, authorName)
	})
	if err != nil {
		return AuthorDto{}, err
	}

	s.logger.InfoContext(ctx, "author removed", "author", authorName, "books_removed", removed)
	return out, nil
}
