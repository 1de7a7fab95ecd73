package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type SuratMasukRepository struct {
	sqlHandler *database.SQLHandler[domain.SuratMasuk, domain.SuratMasukFilter]
}

func NewSuratMasukRepository(db *gorm.DB) *SuratMasukRepository {
	return &SuratMasukRepository{
		sqlHandler: database.NewSQLHandler[domain.SuratMasuk](db, applyFilter),
	}
}

func applyFilter(qb *gorm.DB, filter *domain.SuratMasukFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.NomorSurat != nil {
		qb = qb.Where("nomor_surat = ?", *filter.NomorSurat)
	}
	if filter.PenerimaID != nil {
		qb = qb.Where("penerima_id = ?", *filter.PenerimaID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.SifatSurat != nil {
		qb = qb.Where("sifat_surat = ?", *filter.SifatSurat)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, "nomor_surat", "pengirim", "perihal")
	}
	return database.ApplyDateRange(qb, "created_at", filter.CreatedWithin)
}

func (r *SuratMasukRepository) Create(ctx context.Context, s *domain.SuratMasuk) error {
	return r.sqlHandler.Create(ctx, s, database.WithOmit(clause.Associations))
}

func (r *SuratMasukRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratMasuk, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

// LockByID loads a letter with a row lock held until the surrounding transaction ends.
func (r *SuratMasukRepository) LockByID(ctx context.Context, id string) (*domain.SuratMasuk, error) {
	return r.sqlHandler.FindByID(ctx, id, nil, database.WithLock())
}

func (r *SuratMasukRepository) FindOne(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindOneOption) (*domain.SuratMasuk, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *SuratMasukRepository) FindMany(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindManyOption) ([]*domain.SuratMasuk, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *SuratMasukRepository) FindPage(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindPageOption) ([]*domain.SuratMasuk, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *SuratMasukRepository) Update(ctx context.Context, s *domain.SuratMasuk) error {
	return r.sqlHandler.Update(ctx, s, database.WithOmit(clause.Associations))
}

func (r *SuratMasukRepository) UpdateStatus(ctx context.Context, id string, status domain.StatusSuratMasuk) error {
	return r.sqlHandler.UpdateFields(ctx, id, map[string]any{"status": status})
}

func (r *SuratMasukRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *SuratMasukRepository) Count(ctx context.Context, filter *domain.SuratMasukFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

func (r *SuratMasukRepository) CountGroupBy(ctx context.Context, filter *domain.SuratMasukFilter, column string) ([]domain.GroupCount, error) {
	return r.sqlHandler.CountGroupBy(ctx, filter, column)
}
