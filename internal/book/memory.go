package book

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var errReadOnlyTx = errors.New("write attempted in read-only transaction")

type memoryBook struct {
	isbn          int64
	title         string
	publisherName string
	authorNames   []string
}

type memoryState struct {
	books      map[int64]memoryBook
	authors    map[string]Author
	publishers map[string]Publisher
}

func newMemoryState() *memoryState {
	return &memoryState{
		books:      make(map[int64]memoryBook),
		authors:    make(map[string]Author),
		publishers: make(map[string]Publisher),
	}
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		books:      make(map[int64]memoryBook, len(s.books)),
		authors:    make(map[string]Author, len(s.authors)),
		publishers: make(map[string]Publisher, len(s.publishers)),
	}
	for k, v := range s.books {
		v.authorNames = append([]string(nil), v.authorNames...)
		c.books[k] = v
	}
	for k, v := range s.authors {
		c.authors[k] = v
	}
	for k, v := range s.publishers {
		c.publishers[k] = v
	}
	return c
}

// MemoryStore provides an in-memory implementation of Store.
// Read-write transactions run against a copy of the state that replaces it only on success.
type MemoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

// InTx runs fn against the store. Read-write units of work are serialized.
func (m *MemoryStore) InTx(_ context.Context, mode TxMode, fn func(tx Tx) error) error {
	if mode == TxReadOnly {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return fn(&memoryTx{state: m.state, readOnly: true})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.state.clone()
	if err := fn(&memoryTx{state: work}); err != nil {
		return err
	}
	m.state = work
	return nil
}

type memoryTx struct {
	state    *memoryState
	readOnly bool
}

func (t *memoryTx) Books() BookRepository           { return memoryBooks{t} }
func (t *memoryTx) Authors() AuthorRepository       { return memoryAuthors{t} }
func (t *memoryTx) Publishers() PublisherRepository { return memoryPublishers{t} }

func (t *memoryTx) writable() error {
	if t.readOnly {
		return errReadOnlyTx
	}
	return nil
}

func (t *memoryTx) materialize(b memoryBook) Book {
	authors := make([]Author, 0, len(b.authorNames))
	for _, name := range b.authorNames {
		authors = append(authors, t.state.authors[name])
	}
	return Book{
		ISBN:          b.isbn,
		Title:         b.title,
		PublisherName: b.publisherName,
		Authors:       authors,
	}
}

func (t *memoryTx) collect(match func(memoryBook) bool) []Book {
	out := []Book{}
	for _, b := range t.state.books {
		if match(b) {
			out = append(out, t.materialize(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ISBN < out[j].ISBN })
	return out
}

func hasAuthor(b memoryBook, name string) bool {
	for _, n := range b.authorNames {
		if n == name {
			return true
		}
	}
	return false
}

type memoryBooks struct{ tx *memoryTx }

func (r memoryBooks) FindByISBN(_ context.Context, isbn int64) (Book, error) {
	b, ok := r.tx.state.books[isbn]
	if !ok {
		return Book{}, ErrNotFound
	}
	return r.tx.materialize(b), nil
}

func (r memoryBooks) ExistsByISBN(_ context.Context, isbn int64) (bool, error) {
	_, ok := r.tx.state.books[isbn]
	return ok, nil
}

func (r memoryBooks) Insert(_ context.Context, b Book) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.books[b.ISBN]; ok {
		return ErrAlreadyExists
	}
	if _, ok := r.tx.state.publishers[b.PublisherName]; !ok {
		return fmt.Errorf("insert book %d: unknown publisher %q", b.ISBN, b.PublisherName)
	}
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		if _, ok := r.tx.state.authors[a.Name]; !ok {
			return fmt.Errorf("insert book %d: unknown author %q", b.ISBN, a.Name)
		}
		names = append(names, a.Name)
	}
	r.tx.state.books[b.ISBN] = memoryBook{
		isbn:          b.ISBN,
		title:         b.Title,
		publisherName: b.PublisherName,
		authorNames:   names,
	}
	return nil
}

func (r memoryBooks) UpdateTitle(_ context.Context, isbn int64, title string) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	b, ok := r.tx.state.books[isbn]
	if !ok {
		return ErrNotFound
	}
	b.title = title
	r.tx.state.books[isbn] = b
	return nil
}

func (r memoryBooks) Delete(_ context.Context, isbn int64) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.books[isbn]; !ok {
		return ErrNotFound
	}
	delete(r.tx.state.books, isbn)
	return nil
}

func (r memoryBooks) FindByAuthorName(_ context.Context, name string) ([]Book, error) {
	return r.tx.collect(func(b memoryBook) bool { return hasAuthor(b, name) }), nil
}

func (r memoryBooks) FindByPublisherName(_ context.Context, name string) ([]Book, error) {
	return r.tx.collect(func(b memoryBook) bool { return b.publisherName == name }), nil
}

func (r memoryBooks) DeleteByAuthorName(_ context.Context, name string) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	var n int64
	for isbn, b := range r.tx.state.books {
		if hasAuthor(b, name) {
			delete(r.tx.state.books, isbn)
			n++
		}
	}
	return n, nil
}

type memoryAuthors struct{ tx *memoryTx }

func (r memoryAuthors) FindByName(_ context.Context, name string) (Author, error) {
	a, ok := r.tx.state.authors[name]
	if !ok {
		return Author{}, ErrNotFound
	}
	return a, nil
}

func (r memoryAuthors) FindOrCreate(_ context.Context, a Author) (Author, error) {
	if existing, ok := r.tx.state.authors[a.Name]; ok {
		return existing, nil
	}
	if err := r.tx.writable(); err != nil {
		return Author{}, err
	}
	r.tx.state.authors[a.Name] = a
	return a, nil
}

func (r memoryAuthors) DeleteByName(_ context.Context, name string) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.authors[name]; !ok {
		return ErrNotFound
	}
	for isbn, b := range r.tx.state.books {
		if hasAuthor(b, name) {
			return fmt.Errorf("delete author %q: still referenced by book %d", name, isbn)
		}
	}
	delete(r.tx.state.authors, name)
	return nil
}

type memoryPublishers struct{ tx *memoryTx }

func (r memoryPublishers) FindOrCreate(_ context.Context, name string) (Publisher, error) {
	if existing, ok := r.tx.state.publishers[name]; ok {
		return existing, nil
	}
	if err := r.tx.writable(); err != nil {
		return Publisher{}, err
	}
	p := Publisher{Name: name}
	r.tx.state.publishers[name] = p
	return p, nil
}

func (r memoryPublishers) FindNamesByAuthor(_ context.Context, authorName string) ([]string, error) {
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range r.tx.state.books {
		if !hasAuthor(b, authorName) {
			continue
		}
		if _, ok := seen[b.publisherName]; ok {
			continue
		}
		seen[b.publisherName] = struct{}{}
		out = append(out, b.publisherName)
	}
	sort.Strings(out)
	return out, nil
}
