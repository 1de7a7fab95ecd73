package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/realboxofme/sintas/domain"
)

type SuratKeluarRepository interface {
	Create(ctx context.Context, s *domain.SuratKeluar) error
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.SuratKeluar, error)
	FindOne(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindOneOption) (*domain.SuratKeluar, error)
	FindPage(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindPageOption) ([]*domain.SuratKeluar, *domain.Pagination, error)
	Update(ctx context.Context, s *domain.SuratKeluar) error
	Delete(ctx context.Context, id string) error
}

type ArsipRepository interface {
	DeleteMany(ctx context.Context, filter *domain.ArsipFilter) (int64, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.User, error)
}

type suratKeluarUsecase struct {
	repo       SuratKeluarRepository
	arsipRepo  ArsipRepository
	userRepo   UserRepository
	transactor domain.Transactor
	stats      domain.StatsInvalidator
}

func NewSuratKeluarUsecase(
	repo SuratKeluarRepository,
	arsipRepo ArsipRepository,
	userRepo UserRepository,
	transactor domain.Transactor,
	stats domain.StatsInvalidator,
) domain.SuratKeluarUsecase {
	return &suratKeluarUsecase{
		repo:       repo,
		arsipRepo:  arsipRepo,
		userRepo:   userRepo,
		transactor: transactor,
		stats:      stats,
	}
}

func (u *suratKeluarUsecase) findPengirim(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrPengirimNotFound.WithWrap(err)
		}
		return nil, err
	}
	return user, nil
}

func (u *suratKeluarUsecase) ensureUniqueNomor(ctx context.Context, nomor string, excludeID *string) error {
	existing, err := u.repo.FindOne(ctx, &domain.SuratKeluarFilter{NomorSurat: &nomor, IDNe: excludeID}, nil)
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
		return domain.ErrPengirimNotFound.WithWrap(err)
	}
	return err
}

func (u *suratKeluarUsecase) Create(ctx context.Context, req *domain.SuratKeluarCreateRequest) (*domain.SuratKeluar, error) {
	s := &domain.SuratKeluar{
		NomorSurat:     req.NomorSurat,
		TanggalSurat:   req.TanggalSurat,
		Penerima:       req.Penerima,
		AlamatPenerima: req.AlamatPenerima,
		Perihal:        req.Perihal,
		SifatSurat:     req.SifatSurat,
		PengirimID:     req.PengirimID,
		FileSurat:      req.FileSurat,
		FileNama:       req.FileNama,
		Catatan:        req.Catatan,
		Status:         req.Status,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	pengirim, err := u.findPengirim(ctx, s.PengirimID)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUniqueNomor(ctx, s.NomorSurat, nil); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, s); err != nil {
		return nil, translateWriteError(err)
	}
	s.Pengirim = pengirim
	u.stats.Invalidate(ctx)
	return s, nil
}

func (u *suratKeluarUsecase) FindByID(ctx context.Context, id string) (*domain.SuratKeluar, error) {
	s, err := u.repo.FindByID(ctx, id, &domain.FindOneOption{Preloads: []string{"Pengirim", "Arsip"}})
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratKeluarNotFound.WithWrap(err)
		}
		return nil, err
	}
	if s.Arsip == nil {
		s.Arsip = []*domain.Arsip{}
	}
	return s, nil
}

func (u *suratKeluarUsecase) FindPage(ctx context.Context, filter *domain.SuratKeluarFilter, option *domain.FindPageOption) ([]*domain.SuratKeluar, *domain.Pagination, error) {
	if option == nil {
		option = &domain.FindPageOption{}
	}
	option.Preloads = append(option.Preloads, "Pengirim")
	return u.repo.FindPage(ctx, filter, option)
}

func (u *suratKeluarUsecase) Update(ctx context.Context, id string, req *domain.SuratKeluarUpdateRequest) (*domain.SuratKeluar, error) {
	s, err := u.repo.FindByID(ctx, id, nil)
	if err != nil {
		if domain.IsRecordNotFound(err) {
			return nil, domain.ErrSuratKeluarNotFound.WithWrap(err)
		}
		return nil, err
	}

	nomorChanged := req.NomorSurat != nil && strings.TrimSpace(*req.NomorSurat) != s.NomorSurat
	pengirimChanged := req.PengirimID != nil && strings.TrimSpace(*req.PengirimID) != s.PengirimID

	if req.NomorSurat != nil {
		s.NomorSurat = *req.NomorSurat
	}
	if req.TanggalSurat != nil {
		s.TanggalSurat = *req.TanggalSurat
	}
	if req.Penerima != nil {
		s.Penerima = *req.Penerima
	}
	if req.AlamatPenerima != nil {
		s.AlamatPenerima = *req.AlamatPenerima
	}
	if req.Perihal != nil {
		s.Perihal = *req.Perihal
	}
	if req.SifatSurat != nil {
		s.SifatSurat = *req.SifatSurat
	}
	if req.PengirimID != nil {
		s.PengirimID = *req.PengirimID
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

	if pengirimChanged {
		if _, err := u.findPengirim(ctx, s.PengirimID); err != nil {
			return nil, err
		}
	}
	if nomorChanged {
		if err := u.ensureUniqueNomor(ctx, s.NomorSurat, &s.ID); err != nil {
			return nil, err
		}
	}

	s.Pengirim, s.Arsip = nil, nil
	if err := u.repo.Update(ctx, s); err != nil {
		return nil, translateWriteError(err)
	}
	u.stats.Invalidate(ctx)
	return u.repo.FindByID(ctx, s.ID, &domain.FindOneOption{Preloads: []string{"Pengirim"}})
}

// Delete removes the letter and the archive records pointing at it.
func (u *suratKeluarUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.repo.FindByID(ctx, id, nil); err != nil {
		if domain.IsRecordNotFound(err) {
			return domain.ErrSuratKeluarNotFound.WithWrap(err)
		}
		return err
	}

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := u.arsipRepo.DeleteMany(ctx, &domain.ArsipFilter{SuratKeluarID: &id}); err != nil {
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
