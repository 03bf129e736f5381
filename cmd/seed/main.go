package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"bookservice/internal/book"
	"bookservice/internal/config"
	"bookservice/internal/platform/database"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Error("cannot open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	service := book.NewService(book.NewPostgresStore(pool, book.WithQueryTimeout(cfg.QueryTimeout)))

	added, skipped, err := seed(ctx, service, catalogue())
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding finished", "added", added, "skipped", skipped)
}

// seed adds every book; books whose ISBN is already stored are counted as skipped.
func seed(ctx context.Context, service book.BookService, books []book.BookDto) (added, skipped int, err error) {
	for _, b := range books {
		ok, err := service.AddBook(ctx, b)
		if err != nil {
			return added, skipped, err
		}
		if ok {
			added++
		} else {
			skipped++
		}
	}
	return added, skipped, nil
}

func catalogue() []book.BookDto {
	kernighan := book.AuthorDto{Name: "Brian Kernighan", BirthDate: book.NewDate(1942, time.January, 30)}
	donovan := book.AuthorDto{Name: "Alan Donovan", BirthDate: book.NewDate(1974, time.January, 1)}
	ritchie := book.AuthorDto{Name: "Dennis Ritchie", BirthDate: book.NewDate(1941, time.September, 9)}
	pike := book.AuthorDto{Name: "Rob Pike", BirthDate: book.NewDate(1956, time.January, 1)}

	return []book.BookDto{
		{ISBN: 9780134190440, Title: "The Go Programming Language", Publisher: "Addison-Wesley", Authors: []book.AuthorDto{donovan, kernighan}},
		{ISBN: 9780131103627, Title: "The C Programming Language", Publisher: "Prentice Hall", Authors: []book.AuthorDto{kernighan, ritchie}},
		{ISBN: 9780201615869, Title: "The Practice of Programming", Publisher: "Addison-Wesley", Authors: []book.AuthorDto{kernighan, pike}},
		{ISBN: 9780139376818, Title: "The Unix Programming Environment", Publisher: "Prentice Hall", Authors: []book.AuthorDto{kernighan, pike}},
	}
}
