package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/utils"
)

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashed, password string) bool
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, userID string, option *domain.FindOneOption) (*domain.User, error)
	FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error)
	FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
	ReferenceCounts(ctx context.Context, userID string) (domain.UserReferenceCounts, error)
	FindAktivitas(ctx context.Context, userID string, limit int) (*domain.UserAktivitas, error)
}

type RoleRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Role, error)
}

type userUsecase struct {
	repo     UserRepository
	roleRepo RoleRepository
	hasher   Hasher
	stats    domain.StatsInvalidator
}

func NewUserUsecase(repo UserRepository, roleRepo RoleRepository, hasher Hasher, stats domain.StatsInvalidator) domain.UserUsecase {
	return &userUsecase{repo: repo, roleRepo: roleRepo, hasher: hasher, stats: stats}
}

var withRole = &domain.FindOneOption{Preloads: []string{"Role"}}

func (u *userUsecase) findRole(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := u.roleRepo.FindByID(ctx, strings.TrimSpace(roleID), nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrRoleNotFound.WithWrap(err)
		}
		return nil, err
	}
	return role, nil
}

func (u *userUsecase) ensureUniqueEmail(ctx context.Context, email string, excludeID *string) error {
	existing, err := u.repo.FindOne(ctx, &domain.UserFilter{Email: &email, IDNe: excludeID}, nil)
	if err != nil && !domain.IsRecordNotFound(err) {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func translateWriteError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateValue):
		return domain.ErrEmailAlreadyExists.WithWrap(err)
	case errors.Is(err, domain.ErrReferenceViolation):
		return domain.ErrRoleNotFound.WithWrap(err)
	}
	return err
}

func (u *userUsecase) Create(ctx context.Context, req *domain.UserCreateRequest) (*domain.User, error) {
	user := &domain.User{
		Email:    req.Email,
		Password: req.Password,
		Nama:     req.Nama,
		NIP:      req.NIP,
		Jabatan:  req.Jabatan,
		Telepon:  utils.NormalizePhone(req.Telepon),
		RoleID:   req.RoleID,
		IsActive: true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	role, err := u.findRole(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUniqueEmail(ctx, user.Email, nil); err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(user.Password)
	if err != nil {
		return nil, domain.ErrPasswordHashFailed.WithWrap(err)
	}
	user.Password = hashedPassword

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}
	user.Role = role
	u.stats.Invalidate(ctx)
	return user, nil
}

func (u *userUsecase) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.repo.FindByID(ctx, userID, withRole)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrUserNotFound.WithWrap(err)
		}
		return nil, err
	}

	aktivitas, err := u.repo.FindAktivitas(ctx, user.ID, domain.UserAktivitasLimit)
	if err != nil {
		return nil, err
	}
	user.Aktivitas = aktivitas
	return user, nil
}

func (u *userUsecase) FindPage(ctx context.Context, filter *domain.UserFilter, option *domain.FindPageOption) ([]*domain.User, *domain.Pagination, error) {
	if option == nil {
		option = &domain.FindPageOption{}
	}
	option.Preloads = append(option.Preloads, "Role")
	return u.repo.FindPage(ctx, filter, option)
}

func (u *userUsecase) Update(ctx context.Context, userID string, req *domain.UserUpdateRequest) (*domain.User, error) {
	user, err := u.repo.FindByID(ctx, userID, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrUserNotFound.WithWrap(err)
		}
		return nil, err
	}

	emailChanged := req.Email != nil && strings.ToLower(strings.TrimSpace(*req.Email)) != user.Email
	roleChanged := req.RoleID != nil && strings.TrimSpace(*req.RoleID) != user.RoleID

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Nama != nil {
		user.Nama = *req.Nama
	}
	if req.NIP != nil {
		user.NIP = *req.NIP
	}
	if req.Jabatan != nil {
		user.Jabatan = *req.Jabatan
	}
	if req.Telepon != nil {
		user.Telepon = utils.NormalizePhone(*req.Telepon)
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if roleChanged {
		if _, err := u.findRole(ctx, user.RoleID); err != nil {
			return nil, err
		}
	}
	if emailChanged {
		if err := u.ensureUniqueEmail(ctx, user.Email, &user.ID); err != nil {
			return nil, err
		}
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := u.hasher.Hash(*req.Password)
		if err != nil {
			return nil, domain.ErrPasswordHashFailed.WithWrap(err)
		}
		user.Password = hashed
	}

	user.Role = nil
	if err := u.repo.Update(ctx, user); err != nil {
		return nil, translateWriteError(err)
	}
	if req.IsActive != nil {
		u.stats.Invalidate(ctx)
	}
	return u.repo.FindByID(ctx, user.ID, withRole)
}

// Delete removes a user nothing refers to. Users with history must be deactivated instead.
func (u *userUsecase) Delete(ctx context.Context, userID string) error {
	if _, err := u.repo.FindByID(ctx, userID, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrUserNotFound.WithWrap(err)
		}
		return err
	}

	refs, err := u.repo.ReferenceCounts(ctx, userID)
	if err != nil {
		return err
	}
	if refs.Total() > 0 {
		return domain.ErrUserInUse.
			WithDetail("suratMasuk", refs.SuratMasuk).
			WithDetail("suratKeluar", refs.SuratKeluar).
			WithDetail("disposisi", refs.Disposisi).
			WithDetail("arsip", refs.Arsip)
	}

	if err := u.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrReferenceViolation) {
			return domain.ErrUserInUse.WithWrap(err)
		}
		return err
	}
	u.stats.Invalidate(ctx)
	return nil
}
