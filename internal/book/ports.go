package book

import (
	"context"
)

// BookRepository defines the contract for book data storage.
type BookRepository interface {
	FindByISBN(ctx context.Context, isbn int64) (Book, error)
	ExistsByISBN(ctx context.Context, isbn int64) (bool, error)
	// Insert stores a new book and its author links. Returns ErrAlreadyExists if the ISBN is taken.
	Insert(ctx context.Context, b Book) error
	UpdateTitle(ctx context.Context, isbn int64, title string) error
	Delete(ctx context.Context, isbn int64) error
	// FindByAuthorName returns books whose author set contains name.
	FindByAuthorName(ctx context.Context, name string) ([]Book, error)
	// FindByPublisherName returns books whose publisher name equals name.
	FindByPublisherName(ctx context.Context, name string) ([]Book, error)
	// DeleteByAuthorName deletes every book whose author set contains name.
	DeleteByAuthorName(ctx context.Context, name string) (int64, error)
}

// AuthorRepository defines the contract for author data storage.
type AuthorRepository interface {
	FindByName(ctx context.Context, name string) (Author, error)
	// FindOrCreate inserts a if no author with that name exists and returns the stored author.
	FindOrCreate(ctx context.Context, a Author) (Author, error)
	DeleteByName(ctx context.Context, name string) error
}

// PublisherRepository defines the contract for publisher data storage.
type PublisherRepository interface {
	FindOrCreate(ctx context.Context, name string) (Publisher, error)
	// FindNamesByAuthor returns the distinct names of publishers of books listing authorName.
	FindNamesByAuthor(ctx context.Context, authorName string) ([]string, error)
}

// Tx exposes the repositories bound to a single transaction.
type Tx interface {
	Books() BookRepository
	Authors() AuthorRepository
	Publishers() PublisherRepository
}

// TxMode selects the access mode of a transaction.
type TxMode int

const (
	TxReadWrite TxMode = iota
	TxReadOnly
)

// Store runs units of work atomically. fn's writes are committed if it returns nil
// and rolled back otherwise.
type Store interface {
	InTx(ctx context.Context, mode TxMode, fn func(tx Tx) error) error
}

//go:generate mockgen -destination=mock_service_test.go -package=book bookservice/internal/book BookService

// BookService is the set of operations exposed to transports.
type BookService interface {
	AddBook(ctx context.Context, dto BookDto) (bool, error)
	FindBookByISBN(ctx context.Context, isbn int64) (BookDto, error)
	RemoveBook(ctx context.Context, isbn int64) (BookDto, error)
	UpdateBook(ctx context.Context, isbn int64, title string) (BookDto, error)
	FindBooksByAuthor(ctx context.Context, authorName string) ([]BookDto, error)
	FindBooksByPublisher(ctx context.Context, publisherName string) ([]BookDto, error)
	FindBookAuthors(ctx context.Context, isbn int64) ([]AuthorDto, error)
	FindPublishersByAuthor(ctx context.Context, authorName string) ([]string, error)
	RemoveAuthor(ctx context.Context, authorName string) (AuthorDto, error)
}
