package book

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrNotFound is returned when a book or author does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists is returned by the store when a book with the same ISBN is already stored.
	ErrAlreadyExists = errors.New("entity already exists")
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. An empty string yields the zero date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return jsoniter.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := jsoniter.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Publisher is identified by its name.
type Publisher struct {
	Name string
}

// Author is identified by its name.
type Author struct {
	Name      string
	BirthDate Date
}

// Book references its publisher and authors by identifier.
// Books listing an author are found through the store, not through the Author value.
type Book struct {
	ISBN          int64
	Title         string
	PublisherName string
	Authors       []Author
}
