package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
)

type Hasher interface {
	Hash(password string) (string, error)
}

type RoleRepository interface {
	CreateMany(ctx context.Context, roles []*domain.Role) error
	Count(ctx context.Context, filter *domain.RoleFilter) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Count(ctx context.Context, filter *domain.UserFilter) (int64, error)
}

// AdminConfig supplies the credentials of the seeded administrator.
type AdminConfig interface {
	AdminDefaultEmail() string
	AdminDefaultPassword() string
	AdminDefaultName() string
}

type setupUsecase struct {
	roleRepo   RoleRepository
	userRepo   UserRepository
	transactor domain.Transactor
	hasher     Hasher
	admin      AdminConfig
	stats      domain.StatsInvalidator
}

func NewSetupUsecase(
	roleRepo RoleRepository,
	userRepo UserRepository,
	transactor domain.Transactor,
	hasher Hasher,
	admin AdminConfig,
	stats domain.StatsInvalidator,
) domain.SetupUsecase {
	return &setupUsecase{
		roleRepo:   roleRepo,
		userRepo:   userRepo,
		transactor: transactor,
		hasher:     hasher,
		admin:      admin,
		stats:      stats,
	}
}

func (u *setupUsecase) Status(ctx context.Context) (*domain.SetupStatus, error) {
	roles, err := u.roleRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	users, err := u.userRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &domain.SetupStatus{
		Initialized: roles > 0 && users > 0,
		RolesCount:  roles,
		UsersCount:  users,
	}, nil
}

// Initialize creates the default roles and the administrator in one transaction.
// It writes nothing once any role exists.
func (u *setupUsecase) Initialize(ctx context.Context) (*domain.SetupResult, error) {
	existing := &domain.SetupResult{Initialized: true, AlreadyExist: true}

	password, err := u.hasher.Hash(u.admin.AdminDefaultPassword())
	if err != nil {
		return nil, domain.ErrPasswordHashFailed.WithWrap(err)
	}

	var result *domain.SetupResult
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := u.roleRepo.Count(ctx, nil)
		if err != nil {
			return err
		}
		if count > 0 {
			result = existing
			return nil
		}

		roles := domain.DefaultRoles()
		if err := u.roleRepo.CreateMany(ctx, roles); err != nil {
			return err
		}
		adminRole, _ := lo.Find(roles, func(r *domain.Role) bool { return r.Nama == domain.RoleAdmin })

		admin := &domain.User{
			Email:    strings.ToLower(strings.TrimSpace(u.admin.AdminDefaultEmail())),
			Password: password,
			Nama:     u.admin.AdminDefaultName(),
			NIP:      "ADMIN001",
			Jabatan:  "Administrator",
			RoleID:   adminRole.ID,
			IsActive: true,
		}
		if err := u.userRepo.Create(ctx, admin); err != nil {
			return err
		}
		result = &domain.SetupResult{Initialized: true, Roles: len(roles), User: 1}
		return nil
	})
	if err != nil {
		// a concurrent run committed the same role names first
		if errors.Is(err, domain.ErrDuplicateValue) {
			return existing, nil
		}
		return nil, err
	}

	if !result.AlreadyExist {
		u.stats.Invalidate(ctx)
	}
	return result, nil
}
