package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/realboxofme/sintas/domain"
)

type SuratMasukRepository interface {
	Create(ctx context.Context, s *domain.SuratMasuk) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratMasuk, error)
	FindOne(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindOneOption) (*domain.SuratMasuk, error)
	FindPage(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindPageOption) ([]*domain.SuratMasuk, *domain.Pagination, error)
	Update(ctx context.Context, s *domain.SuratMasuk) error
	Delete(ctx context.Context, id string) error
}

type DisposisiRepository interface {
	DeleteMany(ctx context.Context, filter *domain.DisposisiFilter) (int64, error)
}

type ArsipRepository interface {
	DeleteMany(ctx context.Context, filter *domain.ArsipFilter) (int64, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.User, error)
}

type suratMasukUsecase struct {
	repo          SuratMasukRepository
	disposisiRepo DisposisiRepository
	arsipRepo     ArsipRepository
	userRepo      UserRepository
	transactor    domain.Transactor
	stats         domain.StatsInvalidator
}

func NewSuratMasukUsecase(
	repo SuratMasukRepository,
	disposisiRepo DisposisiRepository,
	arsipRepo ArsipRepository,
	userRepo UserRepository,
	transactor domain.Transactor,
	stats domain.StatsInvalidator,
) domain.SuratMasukUsecase {
	return &suratMasukUsecase{
		repo:          repo,
		disposisiRepo: disposisiRepo,
		arsipRepo:     arsipRepo,
		userRepo:      userRepo,
		transactor:    transactor,
		stats:         stats,
	}
}

var detailPreloads = &domain.FindOneOption{
	Preloads: []string{"Penerima", "Disposisi.Dari", "Disposisi.Ke", "Arsip"},
}

func (u *suratMasukUsecase) findPenerima(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrPenerimaNotFound.WithWrap(err)
		}
		return nil, err
	}
	return user, nil
}

func (u *suratMasukUsecase) ensureUniqueNomor(ctx context.Context, nomor string, excludeID *string) error {
	existing, err := u.repo.FindOne(ctx, &domain.SuratMasukFilter{NomorSurat: &nomor, IDNe: excludeID}, nil)
	if err != nil && !domain.IsRecordNotFound(err) {
		return err
	}
	if existing != nil {
		return domain.ErrNomorSuratAlreadyExists
	}
	return nil
}

func translateWriteError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateValue):
		return domain.ErrNomorSuratAlreadyExists.WithWrap(err)
	case errors.Is(err, domain.ErrReferenceViolation):
		return domain.ErrPenerimaNotFound.WithWrap(err)
	}
	return err
}

func (u *suratMasukUsecase) Create(ctx context.Context, req *domain.SuratMasukCreateRequest) (*domain.SuratMasuk, error) {
	s := &domain.SuratMasuk{
		NomorSurat:   req.NomorSurat,
		TanggalSurat: req.TanggalSurat,
		Pengirim:     req.Pengirim,
		Perihal:      req.Perihal,
		SifatSurat:   req.SifatSurat,
		PenerimaID:   req.PenerimaID,
		FileSurat:    req.FileSurat,
		FileNama:     req.FileNama,
		Catatan:      req.Catatan,
		Status:       domain.StatusSuratMasukDiterima,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	penerima, err := u.findPenerima(ctx, s.PenerimaID)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUniqueNomor(ctx, s.NomorSurat, nil); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, s); err != nil {
		return nil, translateWriteError(err)
	}
	s.Penerima = penerima
	u.stats.Invalidate(ctx)
	return s, nil
}

func (u *suratMasukUsecase) FindByID(ctx context.Context, id string) (*domain.SuratMasuk, error) {
	s, err := u.repo.FindByID(ctx, id, detailPreloads)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratMasukNotFound.WithWrap(err)
		}
		return nil, err
	}
	if s.Disposisi == nil {
		s.Disposisi = []*domain.Disposisi{}
	}
	if s.Arsip == nil {
		s.Arsip = []*domain.Arsip{}
	}
	sort.SliceStable(s.Disposisi, func(i, j int) bool {
		return s.Disposisi[i].CreatedAt.After(s.Disposisi[j].CreatedAt)
	})
	return s, nil
}

func (u *suratMasukUsecase) FindPage(ctx context.Context, filter *domain.SuratMasukFilter, option *domain.FindPageOption) ([]*domain.SuratMasuk, *domain.Pagination, error) {
	if option == nil {
		option = &domain.FindPageOption{}
	}
	option.Preloads = append(option.Preloads, "Penerima")
	return u.repo.FindPage(ctx, filter, option)
}

func (u *suratMasukUsecase) Update(ctx context.Context, id string, req *domain.SuratMasukUpdateRequest) (*domain.SuratMasuk, error) {
	s, err := u.repo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratMasukNotFound.WithWrap(err)
		}
		return nil, err
	}

	nomorChanged := req.NomorSurat != nil && strings.TrimSpace(*req.NomorSurat) != s.NomorSurat
	penerimaChanged := req.PenerimaID != nil && strings.TrimSpace(*req.PenerimaID) != s.PenerimaID

	if req.NomorSurat != nil {
		s.NomorSurat = *req.NomorSurat
	}
	if req.TanggalSurat != nil {
		s.TanggalSurat = *req.TanggalSurat
	}
	if req.Pengirim != nil {
		s.Pengirim = *req.Pengirim
	}
	if req.Perihal != nil {
		s.Perihal = *req.Perihal
	}
	if req.SifatSurat != nil {
		s.SifatSurat = *req.SifatSurat
	}
	if req.PenerimaID != nil {
		s.PenerimaID = *req.PenerimaID
	}
	if req.FileSurat != nil {
		s.FileSurat = *req.FileSurat
	}
	if req.FileNama != nil {
		s.FileNama = *req.FileNama
	}
	if req.Catatan != nil {
		s.Catatan = *req.Catatan
	}
	if req.Status != nil {
		s.Status = *req.Status
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if penerimaChanged {
		if _, err := u.findPenerima(ctx, s.PenerimaID); err != nil {
			return nil, err
		}
	}
	if nomorChanged {
		if err := u.ensureUniqueNomor(ctx, s.NomorSurat, &s.ID); err != nil {
			return nil, err
		}
	}

	s.Penerima, s.Disposisi, s.Arsip = nil, nil, nil
	if err := u.repo.Update(ctx, s); err != nil {
		return nil, translateWriteError(err)
	}
	u.stats.Invalidate(ctx)
	return u.repo.FindByID(ctx, s.ID, &domain.FindOneOption{Preloads: []string{"Penerima"}})
}

// Delete removes the letter together with its dispositions and archive records.
func (u *suratMasukUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.repo.FindByID(ctx, id, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrSuratMasukNotFound.WithWrap(err)
		}
		return err
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.disposisiRepo.DeleteMany(ctx, &domain.DisposisiFilter{SuratMasukID: &id}); err != nil {
			return err
		}
		if _, err := u.arsipRepo.DeleteMany(ctx, &domain.ArsipFilter{SuratMasukID: &id}); err != nil {
			return err
		}
		return u.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	u.stats.Invalidate(ctx)
	return nil
}
