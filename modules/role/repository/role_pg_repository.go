package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type RoleRepository struct {
	sqlHandler *database.SQLHandler[domain.Role, domain.RoleFilter]
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		sqlHandler: database.NewSQLHandler[domain.Role](db, applyFilter),
	}
}

func applyFilter(qb *gorm.DB, filter *domain.RoleFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.Nama != nil {
		qb = qb.Where("nama = ?", *filter.Nama)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, "nama", "deskripsi")
	}
	return qb
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.sqlHandler.Create(ctx, role)
}

func (r *RoleRepository) CreateMany(ctx context.Context, roles []*domain.Role) error {
	return r.sqlHandler.CreateMany(ctx, roles)
}

func (r *RoleRepository) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindByID(ctx, id, option)
}

func (r *RoleRepository) FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *RoleRepository) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	return r.sqlHandler.Update(ctx, role, database.WithOmit("Users"))
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	return r.sqlHandler.DeleteByID(ctx, id)
}

func (r *RoleRepository) Count(ctx context.Context, filter *domain.RoleFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}
