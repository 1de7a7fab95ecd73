package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/realboxofme/sintas/domain"
)

// SQLHandler implements the CRUD plumbing shared by every repository.
// T is the entity and V its filter; applyFilter must accept a nil filter.
type SQLHandler[T any, V any] struct {
	db          *gorm.DB
	applyFilter func(*gorm.DB, *V) *gorm.DB
}

func NewSQLHandler[T any, V any](
	db *gorm.DB,
	applyFilter func(*gorm.DB, *V) *gorm.DB,
) *SQLHandler[T, V] {
	return &SQLHandler[T, V]{applyFilter: applyFilter, db: db}
}

type DBOption func(*gorm.DB) *gorm.DB

func WithOmit(fields ...string) DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Omit(fields...)
	}
}

// WithLock takes a row lock on the selected rows (SELECT ... FOR UPDATE).
func WithLock() DBOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(forUpdate)
	}
}

// conn returns the transaction bound to ctx, or the pool, with opts applied.
func (h *SQLHandler[T, V]) conn(ctx context.Context, opts ...DBOption) *gorm.DB {
	qb := h.db
	if tx, ok := TxFromContext(ctx); ok {
		qb = tx
	}
	qb = qb.WithContext(ctx)
	for _, opt := range opts {
		qb = opt(qb)
	}
	return qb
}

func (h *SQLHandler[T, V]) DB(ctx context.Context) *gorm.DB {
	return h.conn(ctx)
}

func (h *SQLHandler[T, V]) Create(ctx context.Context, entity *T, opts ...DBOption) error {
	return translateError(h.conn(ctx, opts...).Create(entity).Error)
}

func (h *SQLHandler[T, V]) CreateMany(ctx context.Context, entities []*T, opts ...DBOption) error {
	if len(entities) == 0 {
		return nil
	}
	return translateError(h.conn(ctx, opts...).Create(&entities).Error)
}

func applyPreloads(db *gorm.DB, preloads []string) *gorm.DB {
	for _, field := range preloads {
		db = db.Preload(field)
	}
	return db
}

func (h *SQLHandler[T, V]) FindByID(ctx context.Context, id string, option *domain.FindOneOption, opts ...DBOption) (*T, error) {
	execDB := h.conn(ctx, opts...)
	if option != nil {
		execDB = applyPreloads(execDB, option.Preloads)
	}

	var entity T
	if err := execDB.Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (h *SQLHandler[T, V]) FindOne(ctx context.Context, filter *V, option *domain.FindOneOption, opts ...DBOption) (*T, error) {
	execDB := h.applyFilter(h.conn(ctx, opts...), filter)
	if option != nil {
		execDB = applyPreloads(execDB, option.Preloads)
	}

	var entity T
	if err := execDB.First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func applyFindManyOption(db *gorm.DB, option *domain.FindManyOption) *gorm.DB {
	if option == nil {
		return db
	}
	for _, sortField := range option.Sort {
		db = db.Order(sortField)
	}
	if option.Limit != nil {
		db = db.Limit(*option.Limit)
	}
	if option.Offset != nil {
		db = db.Offset(*option.Offset)
	}
	return applyPreloads(db, option.Preloads)
}

func (h *SQLHandler[T, V]) FindMany(ctx context.Context, filter *V, option *domain.FindManyOption, opts ...DBOption) ([]*T, error) {
	execDB := h.applyFilter(h.conn(ctx, opts...), filter)
	execDB = applyFindManyOption(execDB, option)

	entities := make([]*T, 0)
	if err := execDB.Find(&entities).Error; err != nil {
		return nil, translateError(err)
	}
	return entities, nil
}

func applyFindPageOption(db *gorm.DB, option *domain.FindPageOption) (outDB *gorm.DB, page, limit int) {
	outDB = db
	if option != nil {
		for _, sortField := range option.Sort {
			outDB = outDB.Order(sortField)
		}
		outDB = applyPreloads(outDB, option.Preloads)
		page, limit = option.Page, option.Limit
	}
	page, limit = domain.NormalizePage(page, limit)
	outDB = outDB.Offset(domain.Offset(page, limit)).Limit(limit)
	return
}

func (h *SQLHandler[T, V]) FindPage(ctx context.Context, filter *V, option *domain.FindPageOption, opts ...DBOption) ([]*T, *domain.Pagination, error) {
	execDB := h.applyFilter(h.conn(ctx, opts...), filter)

	var total int64
	if err := execDB.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, nil, translateError(err)
	}

	execDB, page, limit := applyFindPageOption(execDB, option)

	entities := make([]*T, 0)
	if err := execDB.Find(&entities).Error; err != nil {
		return nil, nil, translateError(err)
	}
	return entities, domain.NewPagination(page, limit, total), nil
}

func (h *SQLHandler[T, V]) Update(ctx context.Context, entity *T, opts ...DBOption) error {
	return translateError(h.conn(ctx, opts...).Save(entity).Error)
}

func (h *SQLHandler[T, V]) UpdateFields(ctx context.Context, id string, fields map[string]any, opts ...DBOption) error {
	res := h.conn(ctx, opts...).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// DeleteByID removes the row permanently.
func (h *SQLHandler[T, V]) DeleteByID(ctx context.Context, id string, opts ...DBOption) error {
	res := h.conn(ctx, opts...).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (h *SQLHandler[T, V]) DeleteMany(ctx context.Context, filter *V, opts ...DBOption) (int64, error) {
	res := h.applyFilter(h.conn(ctx, opts...), filter).Delete(new(T))
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

func (h *SQLHandler[T, V]) Count(ctx context.Context, filter *V, opts ...DBOption) (int64, error) {
	var count int64
	err := h.applyFilter(h.conn(ctx, opts...), filter).Model(new(T)).Count(&count).Error
	return count, translateError(err)
}

// CountGroupBy counts the filtered rows per distinct value of column, ordered by value.
// column must come from code, never from request input.
func (h *SQLHandler[T, V]) CountGroupBy(ctx context.Context, filter *V, column string, opts ...DBOption) ([]domain.GroupCount, error) {
	rows := make([]domain.GroupCount, 0)
	err := h.applyFilter(h.conn(ctx, opts...), filter).
		Model(new(T)).
		Select(fmt.Sprintf("%s AS value, COUNT(*) AS count", column)).
		Group(column).
		Order("value").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

// ApplySearch adds a case-insensitive partial match of searchTerm against any of columns.
func ApplySearch(db *gorm.DB, searchTerm string, columns ...string) *gorm.DB {
	searchTerm = strings.TrimSpace(searchTerm)
	if searchTerm == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + EscapeLike(searchTerm) + "%"
	conditions := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		conditions[i] = fmt.Sprintf("%s ILIKE ?", column)
		args[i] = pattern
	}
	return db.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

// ApplyDateRange bounds column by an inclusive range. Nil ends are open.
func ApplyDateRange(db *gorm.DB, column string, rng *domain.DateRange) *gorm.DB {
	if rng.IsZero() {
		return db
	}
	if rng.From != nil {
		db = db.Where(column+" >= ?", *rng.From)
	}
	if rng.To != nil {
		db = db.Where(column+" <= ?", *rng.To)
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE pattern.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateValue.WithWrap(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrReferenceViolation.WithWrap(err)
	}
	return err
}
