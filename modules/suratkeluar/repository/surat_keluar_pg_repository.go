package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type SuratKeluarRepository struct {
	sqlHandler *database.SQLHandler[domain.SuratKeluar, domain.SuratKeluarFilter]
}

func NewSuratKeluarRepository(db *gorm.DB) *SuratKeluarRepository {
	return &SuratKeluarRepository{
		sqlHandler: database.NewSQLHandler[domain.SuratKeluar](db, applyFilter),
	}
}

func applyFilter(qb *gorm.DB, filter *domain.SuratKeluarFilter) *gorm.DB {
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
	if filter.PengirimID != nil {
		qb = qb.Where("pengirim_id = ?", *filter.PengirimID)
	}
	if filter.Status != nil {
		qb = qb.Where("status = ?", *filter.Status)
	}
	if filter.SifatSurat != nil {
		qb = qb.Where("sifat_surat = ?", *filter.SifatSurat)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, "nomor_surat", "penerima", "perihal")
	}
	return database.ApplyDateRange(qb, "created_at", filter.CreatedWithin)
}

func (r *SuratKeluarRepository) Create(ctx context.Context, s *domain.SuratKeluar) error {
	return r.sqlHandler.Create(ctx, s, database.WithOmit(clause.Associations))
}

func (r *SuratKeluarRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratKeluar, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *SuratKeluarRepository) LockByID(ctx context.Context, id string) (*domain.SuratKeluar, error) {
	return r.sqlHandler.FindByID(ctx, id, nil, database.WithLock())
}

func (r *SuratKeluarRepository) FindOne(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindOneOption) (*domain.SuratKeluar, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *SuratKeluarRepository) FindMany(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindManyOption) ([]*domain.SuratKeluar, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *SuratKeluarRepository) FindPage(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindPageOption) ([]*domain.SuratKeluar, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *SuratKeluarRepository) Update(ctx context.Context, s *domain.SuratKeluar) error {
	return r.sqlHandler.Update(ctx, s, database.WithOmit(clause.Associations))
}

func (r *SuratKeluarRepository) UpdateStatus(ctx context.Context, id string, status domain.StatusSuratKeluar) error {
	return r.sqlHandler.UpdateFields(ctx, id, map[string]any{"status": status})
}

func (r *SuratKeluarRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *SuratKeluarRepository) Count(ctx context.Context, filter *domain.SuratKeluarFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

func (r *SuratKeluarRepository) CountGroupBy(ctx context.Context, filter *domain.SuratKeluarFilter, column string) ([]domain.GroupCount, error) {
	return r.sqlHandler.CountGroupBy(ctx, filter, column)
}
