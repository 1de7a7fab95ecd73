package usecase

import (
	"context"
	"time"

	"github.com/realboxofme/sintas/domain"
)

type ArsipRepository interface {
	Create(ctx context.Context, a *domain.Arsip) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.Arsip, error)
	FindPage(ctx context.Context, filter *domain.ArsipFilter, option *domain.FindPageOption) ([]*domain.Arsip, *domain.Pagination, error)
	Update(ctx context.Context, a *domain.Arsip) error
	Delete(ctx context.Context, id string) error
}

type SuratMasukRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratMasuk, error)
	UpdateStatus(ctx context.Context, id string, status domain.StatusSuratMasuk) error
}

type SuratKeluarRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratKeluar, error)
	UpdateStatus(ctx context.Context, id string, status domain.StatusSuratKeluar) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.User, error)
}

type arsipUsecase struct {
	repo            ArsipRepository
	suratMasukRepo  SuratMasukRepository
	suratKeluarRepo SuratKeluarRepository
	userRepo        UserRepository
	transactor      domain.Transactor
	stats           domain.StatsInvalidator
	now             func() time.Time
}

func NewArsipUsecase(
	repo ArsipRepository,
	suratMasukRepo SuratMasukRepository,
	suratKeluarRepo SuratKeluarRepository,
	userRepo UserRepository,
	transactor domain.Transactor,
	stats domain.StatsInvalidator,
) domain.ArsipUsecase {
	return &arsipUsecase{
		repo:            repo,
		suratMasukRepo:  suratMasukRepo,
		suratKeluarRepo: suratKeluarRepo,
		userRepo:        userRepo,
		transactor:      transactor,
		stats:           stats,
		now:             time.Now,
	}
}

var withRelations = &domain.FindOneOption{Preloads: []string{"SuratMasuk", "SuratKeluar", "DiarsipkanOleh"}}

// ensureSubject checks that the archived letter exists.
func (u *arsipUsecase) ensureSubject(ctx context.Context, a *domain.Arsip) error {
	var err error
	switch a.JenisSurat {
	case domain.JenisSuratMasuk:
		if _, err = u.suratMasukRepo.FindByID(ctx, *a.SuratMasukID, nil); domain.IsRecordNotFound(err) {
			return domain.ErrSuratMasukNotFound.WithWrap(err)
		}
	case domain.JenisSuratKeluar:
		if _, err = u.suratKeluarRepo.FindByID(ctx, *a.SuratKeluarID, nil); domain.IsRecordNotFound(err) {
			return domain.ErrSuratKeluarNotFound.WithWrap(err)
		}
	}
	return err
}

// Create archives a letter and marks it Diarsipkan in the same transaction.
func (u *arsipUsecase) Create(ctx context.Context, req *domain.ArsipCreateRequest) (*domain.Arsip, error) {
	a := &domain.Arsip{
		JenisSurat:       req.JenisSurat,
		SuratMasukID:     req.SuratMasukID,
		SuratKeluarID:    req.SuratKeluarID,
		Kategori:         req.Kategori,
		LokasiArsip:      req.LokasiArsip,
		Retensi:          req.Retensi,
		StatusArsip:      req.StatusArsip,
		DiarsipkanOlehID: req.DiarsipkanOlehID,
		Catatan:          req.Catatan,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.FindByID(ctx, a.DiarsipkanOlehID, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrPengarsipNotFound.WithWrap(err)
		}
		return nil, err
	}
	if err := u.ensureSubject(ctx, a); err != nil {
		return nil, err
	}

	a.TanggalArsip = u.now()
	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, a); err != nil {
			return err
		}
		if a.JenisSurat == domain.JenisSuratMasuk {
			return u.suratMasukRepo.UpdateStatus(ctx, *a.SuratMasukID, domain.StatusSuratMasukDiarsipkan)
		}
		return u.suratKeluarRepo.UpdateStatus(ctx, *a.SuratKeluarID, domain.StatusSuratKeluarDiarsipkan)
	})
	if err != nil {
		return nil, err
	}
	u.stats.Invalidate(ctx)
	return u.repo.FindByID(ctx, a.ID, withRelations)
}

func (u *arsipUsecase) FindByID(ctx context.Context, id string) (*domain.Arsip, error) {
	a, err := u.repo.FindByID(ctx, id, withRelations)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrArsipNotFound.WithWrap(err)
		}
		return nil, err
	}
	return a, nil
}

func (u *arsipUsecase) FindPage(ctx context.Context, filter *domain.ArsipFilter, option *domain.FindPageOption) ([]*domain.Arsip, *domain.Pagination, error) {
	if option == nil {
		option = &domain.FindPageOption{}
	}
	option.Preloads = append(option.Preloads, withRelations.Preloads...)
	return u.repo.FindPage(ctx, filter, option)
}

func (u *arsipUsecase) Update(ctx context.Context, id string, req *domain.ArsipUpdateRequest) (*domain.Arsip, error) {
	a, err := u.repo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrArsipNotFound.WithWrap(err)
		}
		return nil, err
	}

	if req.Kategori != nil {
		a.Kategori = *req.Kategori
	}
	if req.LokasiArsip != nil {
		a.LokasiArsip = *req.LokasiArsip
	}
	if req.Retensi != nil {
		a.Retensi = *req.Retensi
	}
	if req.StatusArsip != nil {
		a.StatusArsip = *req.StatusArsip
	}
	if req.Catatan != nil {
		a.Catatan = *req.Catatan
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	a.SuratMasuk, a.SuratKeluar, a.DiarsipkanOleh = nil, nil, nil
	if err := u.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	u.stats.Invalidate(ctx)
	return u.repo.FindByID(ctx, a.ID, withRelations)
}

// Delete removes the archive record. The letter keeps its Diarsipkan status.
func (u *arsipUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.repo.FindByID(ctx, id, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrArsipNotFound.WithWrap(err)
		}
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.stats.Invalidate(ctx)
	return nil
}
