package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type DisposisiRepository struct {
	sqlHandler *database.SQLHandler[domain.Disposisi, domain.DisposisiFilter]
}

func NewDisposisiRepository(db *gorm.DB) *DisposisiRepository {
	return &DisposisiRepository{
		sqlHandler: database.NewSQLHandler[domain.Disposisi](db, applyFilter),
	}
}

func applyFilter(qb *gorm.DB, filter *domain.DisposisiFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.SuratMasukID != nil {
		qb = qb.Where("surat_masuk_id = ?", *filter.SuratMasukID)
	}
	if filter.DariID != nil {
		qb = qb.Where("dari_id = ?", *filter.DariID)
	}
	if filter.KeID != nil {
		qb = qb.Where("ke_id = ?", *filter.KeID)
	}
	if filter.UserID != nil {
		qb = qb.Where("(dari_id = ? OR ke_id = ?)", *filter.UserID, *filter.UserID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	return database.ApplyDateRange(qb, "created_at", filter.CreatedWithin)
}

func (r *DisposisiRepository) Create(ctx context.Context, d *domain.Disposisi) error {
	return r.sqlHandler.Create(ctx, d, database.WithOmit(clause.Associations))
}

func (r *DisposisiRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Disposisi, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *DisposisiRepository) FindMany(ctx context.Context, filter *domain.DisposisiFilter, option *domain.FindManyOption) ([]*domain.Disposisi, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *DisposisiRepository) FindPage(ctx context.Context, filter *domain.DisposisiFilter, option *domain.FindPageOption) ([]*domain.Disposisi, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *DisposisiRepository) Update(ctx context.Context, d *domain.Disposisi) error {
	return r.sqlHandler.Update(ctx, d, database.WithOmit(clause.Associations))
}

func (r *DisposisiRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *DisposisiRepository) DeleteMany(ctx context.Context, filter *domain.DisposisiFilter) (int64, error) {
	return r.sqlHandler.DeleteMany(ctx, filter)
}

func (r *DisposisiRepository) Count(ctx context.Context, filter *domain.DisposisiFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

func (r *DisposisiRepository) CountGroupBy(ctx context.Context, filter *domain.DisposisiFilter, column string) ([]domain.GroupCount, error) {
	return r.sqlHandler.CountGroupBy(ctx, filter, column)
}
