package domain

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type SQLModel struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *SQLModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Transactor runs fn in a single database transaction. Repositories called with the
// context passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type FindOneOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
}

type FindManyOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Limit    *int     `json:"limit" form:"limit"`
	Offset   *int     `json:"offset" form:"offset"`
}

type FindPageOption struct {
	Preloads []string `json:"preloads" form:"preloads"`
	Sort     []string `json:"sort" form:"sort"`
	Page     int      `json:"page" form:"page"`
	Limit    int      `json:"limit" form:"limit"`
}

// DateRange bounds a query on created_at. Both ends are inclusive and either may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r *DateRange) IsZero() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// GroupCount is one row of a group-by breakdown.
type GroupCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// StringSlice is a set of strings persisted as a JSON array.
type StringSlice []string

// NewStringSlice trims, drops blanks and removes duplicates while keeping the first occurrence order.
func NewStringSlice(s []string) StringSlice {
	out := lo.FilterMap(s, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	})
	return StringSlice(lo.Uniq(out))
}

func (s StringSlice) Contains(v string) bool {
	return lo.Contains(s, v)
}

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	val, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(val), nil
}

func (s *StringSlice) Scan(input interface{}) error {
	var b []byte
	switch v := input.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*s = StringSlice{}
		return nil
	default:
		return errors.Errorf("cannot scan %T into StringSlice", input)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return errors.Wrap(err, "decode string slice")
	}
	*s = NewStringSlice(out)
	return nil
}

func (s StringSlice) GormDataType() string {
	return "jsonb"
}

const (
	DateLayout = "2006-01-02"
)

// Date is a calendar date. It accepts "2006-01-02" or RFC 3339 input and is stored as a SQL date.
type Date time.Time

// ParseDate parses an ISO-8601 date or date-time.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("tanggal harus berformat YYYY-MM-DD atau RFC 3339: %w", err)
	}
	return Date(t), nil
}

func (date Date) Time() time.Time {
	return time.Time(date)
}

func (date Date) String() string {
	return time.Time(date).Format(DateLayout)
}

func (date Date) IsZero() bool {
	return time.Time(date).IsZero()
}

func (date *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*date = Date(nullTime.Time)
	return
}

func (date Date) Value() (driver.Value, error) {
	y, m, d := time.Time(date).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func (date Date) GormDataType() string {
	return "date"
}

func (date Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + date.String() + `"`), nil
}

func (date *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*date = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("tanggal harus berupa string")
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*date = parsed
	return nil
}

// TrimPtr trims a string pointer in place and returns it.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
