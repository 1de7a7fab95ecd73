package usecase

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

type DisposisiRepository interface {
	Create(ctx context.Context, d *domain.Disposisi) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Disposisi, error)
	FindPage(ctx context.Context, filter *domain.DisposisiFilter, option *domain.FindPageOption) ([]*domain.Disposisi, *domain.Pagination, error)
	Update(ctx context.Context, d *domain.Disposisi) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter *domain.DisposisiFilter) (int64, error)
}

type SuratMasukRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratMasuk, error)
	LockByID(ctx context.Context, id string) (*domain.SuratMasuk, error)
	UpdateStatus(ctx context.Context, id string, status domain.StatusSuratMasuk) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.User, error)
}

type disposisiUsecase struct {
	repo           DisposisiRepository
	suratMasukRepo SuratMasukRepository
	userRepo       UserRepository
	transactor     domain.Transactor
	notifier       domain.NotificationUsecase
	stats          domain.StatsInvalidator
	logger         log.Logger
}

func NewDisposisiUsecase(
	repo DisposisiRepository,
	suratMasukRepo SuratMasukRepository,
	userRepo UserRepository,
	transactor domain.Transactor,
	notifier domain.NotificationUsecase,
	stats domain.StatsInvalidator,
	logger log.Logger,
) domain.DisposisiUsecase {
	return &disposisiUsecase{
		repo:           repo,
		suratMasukRepo: suratMasukRepo,
		userRepo:       userRepo,
		transactor:     transactor,
		notifier:       notifier,
		stats:          stats,
		logger:         logger,
	}
}

var withRelations = &domain.FindOneOption{Preloads: []string{"SuratMasuk", "Dari", "Ke"}}

func (u *disposisiUsecase) findUser(ctx context.Context, id string, notFound *domain.DetailedError) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, notFound.WithWrap(err)
		}
		return nil, err
	}
	return user, nil
}

func (u *disposisiUsecase) Create(ctx context.Context, req *domain.DisposisiCreateRequest) (*domain.Disposisi, error) {
	d := &domain.Disposisi{
		SuratMasukID: req.SuratMasukID,
		DariID:       req.DariID,
		KeID:         req.KeID,
		Instruksi:    req.Instruksi,
		Catatan:      req.Catatan,
		Status:       domain.StatusDisposisiPending,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if _, err := u.suratMasukRepo.FindByID(ctx, d.SuratMasukID, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratMasukNotFound.WithWrap(err)
		}
		return nil, err
	}
	if _, err := u.findUser(ctx, d.DariID, domain.ErrDariUserNotFound); err != nil {
		return nil, err
	}
	if _, err := u.findUser(ctx, d.KeID, domain.ErrKeUserNotFound); err != nil {
		return nil, err
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		surat, err := u.suratMasukRepo.LockByID(ctx, d.SuratMasukID)
		if err != nil {
			return err
		}
		if err := u.repo.Create(ctx, d); err != nil {
			return err
		}
		if next := domain.SuratMasukStatusOnDisposisiCreated(surat.Status); next != surat.Status {
			return u.suratMasukRepo.UpdateStatus(ctx, surat.ID, next)
		}
		return nil
	})
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratMasukNotFound.WithWrap(err)
		}
		if errors.Is(err, domain.ErrReferenceViolation) {
			return nil, domain.ErrUserNotFound.WithWrap(err)
		}
		return nil, err
	}
	u.stats.Invalidate(ctx)

	created, err := u.repo.FindByID(ctx, d.ID, withRelations)
	if err != nil {
		return nil, err
	}
	u.notify(ctx, created)
	return created, nil
}

// notify sends the assignment email in the background. Failures are logged only.
func (u *disposisiUsecase) notify(ctx context.Context, d *domain.Disposisi) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := u.notifier.DisposisiAssigned(ctx, d); err != nil {
			u.logger.WarnContext(ctx, "Failed to send disposisi notification",
				log.String("disposisi_id", d.ID),
				log.String("ke_id", d.KeID),
				log.Error(err),
			)
		}
	}()
}

func (u *disposisiUsecase) FindByID(ctx context.Context, id string) (*domain.Disposisi, error) {
	d, err := u.repo.FindByID(ctx, id, withRelations)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrDisposisiNotFound.WithWrap(err)
		}
		return nil, err
	}
	return d, nil
}

func (u *disposisiUsecase) FindPage(ctx context.Context, filter *domain.DisposisiFilter, option *domain.FindPageOption) ([]*domain.Disposisi, *domain.Pagination, error) {
	if option == nil {
		option = &domain.FindPageOption{}
	}
	option.Preloads = append(option.Preloads, withRelations.Preloads...)
	return u.repo.FindPage(ctx, filter, option)
}

// Update edits a disposition. Marking the last pending disposition of a letter as Selesai
// completes the letter in the same transaction.
func (u *disposisiUsecase) Update(ctx context.Context, id string, req *domain.DisposisiUpdateRequest) (*domain.Disposisi, error) {
	d, err := u.repo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrDisposisiNotFound.WithWrap(err)
		}
		return nil, err
	}

	resolving := domain.DisposisiResolved(req) && d.Status != domain.StatusDisposisiSelesai
	if req.Instruksi != nil {
		d.Instruksi = *req.Instruksi
	}
	if req.Catatan != nil {
		d.Catatan = *req.Catatan
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	d.SuratMasuk, d.Dari, d.Ke = nil, nil, nil
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, d); err != nil {
			return err
		}
		if !resolving {
			return nil
		}

		surat, err := u.suratMasukRepo.LockByID(ctx, d.SuratMasukID)
		if err != nil {
			return err
		}
		pending, err := u.repo.Count(ctx, &domain.DisposisiFilter{
			SuratMasukID: &d.SuratMasukID,
			Status:       lo.ToPtr(domain.StatusDisposisiPending),
		})
		if err != nil {
			return err
		}
		if next, ok := domain.SuratMasukStatusOnDisposisiResolved(surat.Status, pending); ok {
			return u.suratMasukRepo.UpdateStatus(ctx, surat.ID, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		u.stats.Invalidate(ctx)
	}
	return u.repo.FindByID(ctx, d.ID, withRelations)
}

func (u *disposisiUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.repo.FindByID(ctx, id, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrDisposisiNotFound.WithWrap(err)
		}
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.stats.Invalidate(ctx)
	return nil
}
