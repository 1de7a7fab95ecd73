package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/domain"
)

type UserRepository struct {
	sqlHandler *database.SQLHandler[domain.User, domain.UserFilter]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	sqlHandler := database.NewSQLHandler[domain.User](db, applyFilter)
	return &UserRepository{
		sqlHandler: sqlHandler,
	}
}

func applyFilter(qb *gorm.DB, filter *domain.UserFilter) *gorm.DB {
	if filter == nil {
		return qb
	}

	if filter.ID != nil {
		qb = qb.Where("id = ?", *filter.ID)
	}
	if filter.IDNe != nil {
		qb = qb.Where("id != ?", *filter.IDNe)
	}
	if filter.Email != nil {
		qb = qb.Where("email = ?", *filter.Email)
	}
	if filter.RoleID != nil {
		qb = qb.Where("role_id = ?", *filter.RoleID)
	}
	if filter.IsActive != nil {
		qb = qb.Where("is_active = ?", *filter.IsActive)
	}
	if filter.SearchTerm != nil {
		qb = database.ApplySearch(qb, *filter.SearchTerm, "nama", "email", "nip")
	}
	return qb
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.sqlHandler.Create(ctx, user, database.WithOmit("Role"))
}

func (r *UserRepository) FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error) {
	return r.sqlHandler.FindByID(ctx, userID, option)
}

func (r *UserRepository) FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error) {
	return r.sqlHandler.FindOne(ctx, filter, option)
}

func (r *UserRepository) FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error) {
	return r.sqlHandler.FindPage(ctx, filter, option)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.sqlHandler.Update(ctx, user, database.WithOmit("Role"))
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return r.sqlHandler.DeleteByID(ctx, userID)
}

func (r *UserRepository) Count(ctx context.Context, filter *domain.UserFilter) (int64, error) {
	return r.sqlHandler.Count(ctx, filter)
}

// CountByRole returns the number of users holding each of roleIDs. Roles without users are absent.
func (r *UserRepository) CountByRole(ctx context.Context, roleIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(roleIDs))
	if len(roleIDs) == 0 {
		return out, nil
	}

	var rows []domain.GroupCount
	err := r.sqlHandler.DB(ctx).
		Model(&domain.User{}).
		Select("role_id AS value, COUNT(*) AS count").
		Where("role_id IN ?", roleIDs).
		Group("role_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Value] = row.Count
	}
	return out, nil
}

// ReferenceCounts counts the letters, dispositions and archives that point at a user.
func (r *UserRepository) ReferenceCounts(ctx context.Context, userID string) (domain.UserReferenceCounts, error) {
	var counts domain.UserReferenceCounts
	db := r.sqlHandler.DB(ctx)

	queries := []struct {
		model any
		where string
		args  []any
		dest  *int64
	}{
		{&domain.SuratMasuk{}, "penerima_id = ?", []any{userID}, &counts.SuratMasuk},
		{&domain.SuratKeluar{}, "pengirim_id = ?", []any{userID}, &counts.SuratKeluar},
		{&domain.Disposisi{}, "dari_id = ? OR ke_id = ?", []any{userID, userID}, &counts.Disposisi},
		{&domain.Arsip{}, "diarsipkan_oleh_id = ?", []any{userID}, &counts.Arsip},
	}
	for _, q := range queries {
		if err := db.Model(q.model).Where(q.where, q.args...).Count(q.dest).Error; err != nil {
			return counts, err
		}
	}
	return counts, nil
}

// FindAktivitas loads the newest records the user received, sent or took part in.
func (r *UserRepository) FindAktivitas(ctx context.Context, userID string, limit int) (*domain.UserAktivitas, error) {
	db := r.sqlHandler.DB(ctx)
	a := &domain.UserAktivitas{
		SuratMasuk:    []*domain.SuratMasuk{},
		SuratKeluar:   []*domain.SuratKeluar{},
		DisposisiDari: []*domain.Disposisi{},
		DisposisiKe:   []*domain.Disposisi{},
	}

	if err := db.Where("penerima_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&a.SuratMasuk).Error; err != nil {
		return nil, err
	}
	if err := db.Where("pengirim_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&a.SuratKeluar).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("SuratMasuk").Preload("Ke").
		Where("dari_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&a.DisposisiDari).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("SuratMasuk").Preload("Dari").
		Where("ke_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&a.DisposisiKe).Error; err != nil {
		return nil, err
	}
	return a, nil
}
