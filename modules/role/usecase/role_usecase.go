package usecase

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
)

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Role, error)
	FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error)
	FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is the part of the user store roles need for counts and the delete guard.
type UserRepository interface {
	Count(ctx context.Context, filter *domain.UserFilter) (int64, error)
	CountByRole(ctx context.Context, roleIDs []string) (map[string]int64, error)
}

type roleUsecase struct {
	repo     RoleRepository
	userRepo UserRepository
}

func NewRoleUsecase(repo RoleRepository, userRepo UserRepository) domain.RoleUsecase {
	return &roleUsecase{repo: repo, userRepo: userRepo}
}

func (u *roleUsecase) ensureUniqueNama(ctx context.Context, nama string, excludeID *string) error {
	existing, err := u.repo.FindOne(ctx, &domain.RoleFilter{Nama: &nama, IDNe: excludeID}, nil)
	if err != nil && !domain.IsRecordNotFound(err) {
		return err
	}
	if existing != nil {
		return domain.ErrRoleNameAlreadyExists
	}
	return nil
}

func translateWriteError(err error) error {
	if errors.Is(err, domain.ErrDuplicateValue) {
		return domain.ErrRoleNameAlreadyExists.WithWrap(err)
	}
	return err
}

func (u *roleUsecase) Create(ctx context.Context, req *domain.RoleCreateRequest) (*domain.Role, error) {
	role := &domain.Role{
		Nama:        req.Nama,
		Deskripsi:   req.Deskripsi,
		Permissions: req.Permissions,
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if err := u.ensureUniqueNama(ctx, role.Nama, nil); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, role); err != nil {
		return nil, translateWriteError(err)
	}
	return role, nil
}

func (u *roleUsecase) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	role, err := u.repo.FindByID(ctx, id, &domain.FindOneOption{Preloads: []string{"Users"}})
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrRoleNotFound.WithWrap(err)
		}
		return nil, err
	}
	if role.Users == nil {
		role.Users = []*domain.User{}
	}
	role.UserCount = int64(len(role.Users))
	return role, nil
}

func (u *roleUsecase) FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error) {
	roles, pagination, err := u.repo.FindPage(ctx, filter, option)
	if err != nil {
		return nil, nil, err
	}

	counts, err := u.userRepo.CountByRole(ctx, lo.Map(roles, func(r *domain.Role, _ int) string { return r.ID }))
	if err != nil {
		return nil, nil, err
	}
	for _, r := range roles {
		r.UserCount = counts[r.ID]
	}
	return roles, pagination, nil
}

func (u *roleUsecase) Update(ctx context.Context, id string, req *domain.RoleUpdateRequest) (*domain.Role, error) {
	role, err := u.repo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrRoleNotFound.WithWrap(err)
		}
		return nil, err
	}

	namaChanged := req.Nama != nil && *domain.TrimPtr(req.Nama) != role.Nama
	if req.Nama != nil {
		role.Nama = *req.Nama
	}
	if req.Deskripsi != nil {
		role.Deskripsi = *req.Deskripsi
	}
	if req.Permissions != nil {
		role.Permissions = req.Permissions
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if namaChanged {
		if err := u.ensureUniqueNama(ctx, role.Nama, &role.ID); err != nil {
			return nil, err
		}
	}

	if err := u.repo.Update(ctx, role); err != nil {
		return nil, translateWriteError(err)
	}
	return role, nil
}

func (u *roleUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.repo.FindByID(ctx, id, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrRoleNotFound.WithWrap(err)
		}
		return err
	}

	users, err := u.userRepo.Count(ctx, &domain.UserFilter{RoleID: &id})
	if err != nil {
		return err
	}
	if users > 0 {
		return domain.ErrRoleInUse.WithDetail("userCount", users)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReferenceViolation) {
			return domain.ErrRoleInUse.WithWrap(err)
		}
		return err
	}
	return nil
}
