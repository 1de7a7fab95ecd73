package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type ArsipRepository struct {
	sqlHandler *database.SQLHandler[domain.Arsip, domain.ArsipFilter]
}

func NewArsipRepository(db *gorm.DB) *ArsipRepository {
	return &ArsipRepository{
		sqlHandler: database.NewSQLHandler[domain.Arsip](db, applyFilter),
	}
}

func applyFilter(qb *gorm.DB, filter *domain.ArsipFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.SuratMasukID != nil {
		qb = qb.Where("surat_masuk_id = ?", *filter.SuratMasukID)
	}
	if filter.SuratKeluarID != nil {
		qb = qb.Where("surat_keluar_id = ?", *filter.SuratKeluarID)
	}
	if filter.DiarsipkanOlehID != nil {
		qb = qb.Where("diarsipkan_oleh_id = ?", *filter.DiarsipkanOlehID)
	}
	if filter.JenisSurat != nil {
		qb = qb.Where("jenis_surat = ?", *filter.JenisSurat)
	}
	if filter.Kategori != nil {
		qb = qb.Where("kategori = ?", *filter.Kategori)
	}
	if filter.StatusArsip != nil {
		qb = qb.Where("status_arsip = ?", *filter.StatusArsip)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, "kategori", "lokasi_arsip")
	}
	return database.ApplyDateRange(qb, "created_at", filter.CreatedWithin)
}

func (r *ArsipRepository) Create(ctx context.Context, a *domain.Arsip) error {
	return r.sqlHandler.Create(ctx, a, database.WithOmit(clause.Associations))
}

func (r *ArsipRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Arsip, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *ArsipRepository) FindMany(ctx context.Context, filter *domain.ArsipFilter, option *domain.FindManyOption) ([]*domain.Arsip, error) {
	return r.sqlHandler.FindMany(ctx, filter, option)
}

func (r *ArsipRepository) FindPage(ctx context.Context, filter *domain.ArsipFilter, option *domain.FindPageOption) ([]*domain.Arsip, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *ArsipRepository) Update(ctx context.Context, a *domain.Arsip) error {
	return r.sqlHandler.Update(ctx, a, database.WithOmit(clause.Associations))
}

func (r *ArsipRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *ArsipRepository) DeleteMany(ctx context.Context, filter *domain.ArsipFilter) (int64, error) {
	return r.sqlHandler.DeleteMany(ctx, filter)
}

func (r *ArsipRepository) Count(ctx context.Context, filter *domain.ArsipFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

func (r *ArsipRepository) CountGroupBy(ctx context.Context, filter *domain.ArsipFilter, column string) ([]domain.GroupCount, error) {
	return r.sqlHandler.CountGroupBy(ctx, filter, column)
}
