package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultQueryTimeout = 3 * time.Second

	tableBooks       = "books"
	tableBookAuthors = "book_authors"
	tableAuthors     = "authors"

	colISBN          = "isbn"
	colTitle         = "title"
	colPublisherName = "publisher_name"
	colBookISBN      = "book_isbn"
	colAuthorName    = "author_name"

	logMsgBuildQueryFailed = "failed to build query"
	logMsgQueryFailed      = "database query failed"
	logMsgRollbackFailed   = "transaction rollback failed"
	logMsgSQLExecuted      = "executed sql for: "
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDurationMS      = "duration_ms"
)

var dialect = goqu.Dialect("postgres")

// Logger receives SQL debug output and storage failures. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
	logger  Logger
}

// StoreOption configures a PostgresStore.
type StoreOption func(*PostgresStore)

// WithQueryTimeout bounds every statement and the begin/commit of each transaction.
func WithQueryTimeout(d time.Duration) StoreOption {
	return func(s *PostgresStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithStoreLogger sets the logger. SQL statements are logged at debug level.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *PostgresStore) {
		s.logger = logger
	}
}

func NewPostgresStore(db *pgxpool.Pool, opts ...StoreOption) *PostgresStore {
	s := &PostgresStore{db: db, timeout: defaultQueryTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// InTx begins a transaction, runs fn and commits. The transaction is rolled back
// on every other exit path, including a panic in fn.
func (s *PostgresStore) InTx(ctx context.Context, mode TxMode, fn func(tx Tx) error) (err error) {
	opts := pgx.TxOptions{AccessMode: pgx.ReadWrite}
	if mode == TxReadOnly {
		opts.AccessMode = pgx.ReadOnly
	}

	beginCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	tx, err := s.db.BeginTx(beginCtx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		rbErr := tx.Rollback(context.WithoutCancel(ctx))
		if rbErr == nil || errors.Is(rbErr, pgx.ErrTxClosed) {
			return
		}
		if s.logger != nil {
			s.logger.Warn(logMsgRollbackFailed, logAttrError, rbErr.Error())
		}
		if err != nil {
			err = errors.Join(err, rbErr)
		}
	}()

	if err := fn(&pgTx{q: tx, timeout: s.timeout, logger: s.logger}); err != nil {
		return err
	}

	commitCtx, cancelCommit := s.withTimeout(ctx)
	defer cancelCommit()
	if err := tx.Commit(commitCtx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type pgTx struct {
	q       querier
	timeout time.Duration
	logger  Logger
}

func (t *pgTx) Books() BookRepository           { return pgBooks{t} }
func (t *pgTx) Authors() AuthorRepository       { return pgAuthors{t} }
func (t *pgTx) Publishers() PublisherRepository { return pgPublishers{t} }

func (t *pgTx) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, t.timeout)
}

func (t *pgTx) logQuery(action, sql string, start time.Time, err error) {
	if t.logger == nil {
		return
	}
	durationMS := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		t.logger.Error(logMsgQueryFailed, logAttrError, err.Error(), logAttrQuery, sql)
		return
	}
	t.logger.Debug(logMsgSQLExecuted+action, logAttrQuery, sql, logAttrDurationMS, durationMS)
}

func (t *pgTx) buildFailed(err error) error {
	if t.logger != nil {
		t.logger.Error(logMsgBuildQueryFailed, logAttrError, err.Error())
	}
	return fmt.Errorf("build query: %w", err)
}

// scanBooks reads (isbn, title, publisher_name) rows and attaches their authors.
func (t *pgTx) scanBooks(ctx context.Context, action, sql string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := t.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := t.q.Query(timeoutCtx, sql, args...)
	t.logQuery(action, sql, start, err)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.Title, &b.PublisherName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := t.attachAuthors(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *pgTx) attachAuthors(ctx context.Context, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	isbns := make([]int64, 0, len(books))
	index := make(map[int64]int, len(books))
	for i, b := range books {
		isbns = append(isbns, b.ISBN)
		index[b.ISBN] = i
	}

	sql, args := authorsOfBooksSQL(isbns)

	timeoutCtx, cancel := t.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := t.q.Query(timeoutCtx, sql, args...)
	t.logQuery("load authors", sql, start, err)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			isbn      int64
			a         Author
			birthDate *time.Time
		)
		if err := rows.Scan(&isbn, &a.Name, &birthDate); err != nil {
			return err
		}
		if birthDate != nil {
			a.BirthDate = Date{Time: *birthDate}
		}
		i := index[isbn]
		books[i].Authors = append(books[i].Authors, a)
	}
	return rows.Err()
}

func authorBooksSubquery(name string) *goqu.SelectDataset {
	return dialect.From(tableBookAuthors).
		Select(goqu.C(colBookISBN)).
		Where(goqu.C(colAuthorName).Eq(name))
}

// authorsOfBooksSQL selects (book_isbn, name, birth_date) for every author linked to one of isbns.
// The ISBNs travel as a single bigint[] parameter so the statement size does not grow with the result set.
func authorsOfBooksSQL(isbns []int64) (string, []any) {
	const query = `
		SELECT ba.book_isbn, a.name, a.birth_date
		FROM book_authors ba
		JOIN authors a ON a.name = ba.author_name
		WHERE ba.book_isbn = ANY($1)
		ORDER BY ba.book_isbn ASC, a.name ASC`
	return query, []any{isbns}
}

// booksByAuthorSQL: books.isbn IN (SELECT book_isbn FROM book_authors WHERE author_name = name).
func booksByAuthorSQL(name string) (string, []any, error) {
	return dialect.From(tableBooks).
		Select(goqu.C(colISBN), goqu.C(colTitle), goqu.C(colPublisherName)).
		Where(goqu.C(colISBN).In(authorBooksSubquery(name))).
		Order(goqu.C(colISBN).Asc()).
		Prepared(true).
		ToSQL()
}

// booksByPublisherSQL: books.publisher_name = name.
func booksByPublisherSQL(name string) (string, []any, error) {
	return dialect.From(tableBooks).
		Select(goqu.C(colISBN), goqu.C(colTitle), goqu.C(colPublisherName)).
		Where(goqu.C(colPublisherName).Eq(name)).
		Order(goqu.C(colISBN).Asc()).
		Prepared(true).
		ToSQL()
}

// deleteBooksByAuthorSQL deletes books whose isbn is linked to name.
func deleteBooksByAuthorSQL(name string) (string, []any, error) {
	return dialect.Delete(tableBooks).
		Where(goqu.C(colISBN).In(authorBooksSubquery(name))).
		Prepared(true).
		ToSQL()
}

// publisherNamesByAuthorSQL projects the distinct publisher names of books linked to authorName.
func publisherNamesByAuthorSQL(authorName string) (string, []any, error) {
	return dialect.From(goqu.T(tableBooks).As("b")).
		Join(goqu.T(tableBookAuthors).As("ba"), goqu.On(goqu.I("ba.book_isbn").Eq(goqu.I("b.isbn")))).
		SelectDistinct(goqu.I("b.publisher_name")).
		Where(goqu.I("ba.author_name").Eq(authorName)).
		Order(goqu.I("b.publisher_name").Asc()).
		Prepared(true).
		ToSQL()
}

func nullableDate(d Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

type pgBooks struct{ tx *pgTx }

func (r pgBooks) FindByISBN(ctx context.Context, isbn int64) (Book, error) {
	const query = `
		SELECT isbn, title, publisher_name
		FROM books
		WHERE isbn = $1`

	books, err := r.tx.scanBooks(ctx, "find book", query, isbn)
	if err != nil {
		return Book{}, err
	}
	if len(books) == 0 {
		return Book{}, ErrNotFound
	}
	return books[0], nil
}

func (r pgBooks) ExistsByISBN(ctx context.Context, isbn int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	var exists bool
	start := time.Now()
	err := r.tx.q.QueryRow(timeoutCtx, query, isbn).Scan(&exists)
	r.tx.logQuery("book exists", query, start, err)
	return exists, err
}

func (r pgBooks) Insert(ctx context.Context, b Book) error {
	const bookSQL = `
		INSERT INTO books (isbn, title, publisher_name)
		VALUES ($1, $2, $3)`
	const linkSQL = `
		INSERT INTO book_authors (book_isbn, author_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err := r.tx.q.Exec(timeoutCtx, bookSQL, b.ISBN, b.Title, b.PublisherName)
	if isUniqueViolation(err) {
		r.tx.logQuery("insert book", bookSQL, start, nil)
		return ErrAlreadyExists
	}
	r.tx.logQuery("insert book", bookSQL, start, err)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	if len(b.Authors) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range b.Authors {
		batch.Queue(linkSQL, b.ISBN, a.Name)
	}
	start = time.Now()
	results := r.tx.q.SendBatch(timeoutCtx, batch)
	for range b.Authors {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			r.tx.logQuery("link book authors", linkSQL, start, err)
			return fmt.Errorf("link book authors: %w", err)
		}
	}
	err = results.Close()
	r.tx.logQuery("link book authors", linkSQL, start, err)
	return err
}

func (r pgBooks) UpdateTitle(ctx context.Context, isbn int64, title string) error {
	const query = `UPDATE books SET title = $2 WHERE isbn = $1`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.tx.q.Exec(timeoutCtx, query, isbn, title)
	r.tx.logQuery("update book title", query, start, err)
	if err != nil {
		return fmt.Errorf("update book title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r pgBooks) Delete(ctx context.Context, isbn int64) error {
	const query = `DELETE FROM books WHERE isbn = $1`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.tx.q.Exec(timeoutCtx, query, isbn)
	r.tx.logQuery("delete book", query, start, err)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r pgBooks) FindByAuthorName(ctx context.Context, name string) ([]Book, error) {
	sql, args, err := booksByAuthorSQL(name)
	if err != nil {
		return nil, r.tx.buildFailed(err)
	}
	return r.tx.scanBooks(ctx, "find books by author", sql, args...)
}

func (r pgBooks) FindByPublisherName(ctx context.Context, name string) ([]Book, error) {
	sql, args, err := booksByPublisherSQL(name)
	if err != nil {
		return nil, r.tx.buildFailed(err)
	}
	return r.tx.scanBooks(ctx, "find books by publisher", sql, args...)
}

func (r pgBooks) DeleteByAuthorName(ctx context.Context, name string) (int64, error) {
	sql, args, err := deleteBooksByAuthorSQL(name)
	if err != nil {
		return 0, r.tx.buildFailed(err)
	}

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.tx.q.Exec(timeoutCtx, sql, args...)
	r.tx.logQuery("delete books by author", sql, start, err)
	if err != nil {
		return 0, fmt.Errorf("delete books by author: %w", err)
	}
	return tag.RowsAffected(), nil
}

type pgAuthors struct{ tx *pgTx }

func (r pgAuthors) FindByName(ctx context.Context, name string) (Author, error) {
	const query = `SELECT name, birth_date FROM authors WHERE name = $1`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	var (
		a         Author
		birthDate *time.Time
	)
	start := time.Now()
	err := r.tx.q.QueryRow(timeoutCtx, query, name).Scan(&a.Name, &birthDate)
	if errors.Is(err, pgx.ErrNoRows) {
		r.tx.logQuery("find author", query, start, nil)
		return Author{}, ErrNotFound
	}
	r.tx.logQuery("find author", query, start, err)
	if err != nil {
		return Author{}, err
	}
	if birthDate != nil {
		a.BirthDate = Date{Time: *birthDate}
	}
	return a, nil
}

// FindOrCreate relies on the primary key: the no-op update makes RETURNING yield
// the already stored row when the name is taken.
func (r pgAuthors) FindOrCreate(ctx context.Context, a Author) (Author, error) {
	const query = `
		INSERT INTO authors (name, birth_date)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING name, birth_date`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	var (
		out       Author
		birthDate *time.Time
	)
	start := time.Now()
	err := r.tx.q.QueryRow(timeoutCtx, query, a.Name, nullableDate(a.BirthDate)).Scan(&out.Name, &birthDate)
	r.tx.logQuery("find or create author", query, start, err)
	if err != nil {
		return Author{}, fmt.Errorf("find or create author: %w", err)
	}
	if birthDate != nil {
		out.BirthDate = Date{Time: *birthDate}
	}
	return out, nil
}

func (r pgAuthors) DeleteByName(ctx context.Context, name string) error {
	const query = `DELETE FROM authors WHERE name = $1`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	tag, err := r.tx.q.Exec(timeoutCtx, query, name)
	r.tx.logQuery("delete author", query, start, err)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type pgPublishers struct{ tx *pgTx }

func (r pgPublishers) FindOrCreate(ctx context.Context, name string) (Publisher, error) {
	const query = `
		INSERT INTO publishers (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING name`

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	var p Publisher
	start := time.Now()
	err := r.tx.q.QueryRow(timeoutCtx, query, name).Scan(&p.Name)
	r.tx.logQuery("find or create publisher", query, start, err)
	if err != nil {
		return Publisher{}, fmt.Errorf("find or create publisher: %w", err)
	}
	return p, nil
}

func (r pgPublishers) FindNamesByAuthor(ctx context.Context, authorName string) ([]string, error) {
	sql, args, err := publisherNamesByAuthorSQL(authorName)
	if err != nil {
		return nil, r.tx.buildFailed(err)
	}

	timeoutCtx, cancel := r.tx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.tx.q.Query(timeoutCtx, sql, args...)
	r.tx.logQuery("find publishers by author", sql, start, err)
	if err != nil {
		return nil, err
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
