package testutil

import (
	"context"

	"github.com/realboxofme/sintas/domain"
)

func inRange(r *domain.DateRange, m *domain.SQLModel) bool {
	return r.IsZero() || r.Contains(m.CreatedAt)
}

type RoleRepo struct {
	*Store[domain.Role, domain.RoleFilter]
}

func NewRoleRepo() *RoleRepo {
	return &RoleRepo{NewStore(
		func(r *domain.Role) *domain.SQLModel { return &r.SQLModel },
		func(r *domain.Role, f *domain.RoleFilter) bool {
			return eqPtr(f.ID, r.ID) && nePtr(f.IDNe, r.ID) && eqPtr(f.Nama, r.Nama) &&
				containsFold(f.SearchTerm, r.Nama, r.Deskripsi)
		},
		nil,
	)}
}

type UserRepo struct {
	*Store[domain.User, domain.UserFilter]
	Roles *RoleRepo

	// Refs holds the reference counts returned by ReferenceCounts, keyed by user id.
	Refs map[string]domain.UserReferenceCounts
}

func NewUserRepo(roles *RoleRepo) *UserRepo {
	return &UserRepo{
		Store: NewStore(
			func(u *domain.User) *domain.SQLModel { return &u.SQLModel },
			func(u *domain.User, f *domain.UserFilter) bool {
				return eqPtr(f.ID, u.ID) && nePtr(f.IDNe, u.ID) && eqPtr(f.Email, u.Email) &&
					eqPtr(f.RoleID, u.RoleID) && eqPtr(f.IsActive, u.IsActive) &&
					containsFold(f.SearchTerm, u.Nama, u.Email, u.NIP)
			},
			map[string]func(*domain.User) string{"role_id": func(u *domain.User) string { return u.RoleID }},
		),
		Roles: roles,
		Refs:  map[string]domain.UserReferenceCounts{},
	}
}

func (r *UserRepo) withRole(u *domain.User) *domain.User {
	if u != nil && u.Role == nil && r.Roles != nil {
		u.Role, _ = r.Roles.FindByID(context.Background(), u.RoleID, nil)
	}
	return u
}

func (r *UserRepo) FindByID(ctx context.Context, id string, option *domain.FindOneOption) (*domain.User, error) {
	u, err := r.Store.FindByID(ctx, id, option)
	return r.withRole(u), err
}

func (r *UserRepo) FindOne(ctx context.Context, filter *domain.UserFilter, option *domain.FindOneOption) (*domain.User, error) {
	u, err := r.Store.FindOne(ctx, filter, option)
	return r.withRole(u), err
}

func (r *UserRepo) ReferenceCounts(_ context.Context, id string) (domain.UserReferenceCounts, error) {
	if r.Err != nil {
		return domain.UserReferenceCounts{}, r.Err
	}
	return r.Refs[id], nil
}

func (r *UserRepo) FindAktivitas(_ context.Context, _ string, _ int) (*domain.UserAktivitas, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return &domain.UserAktivitas{
		SuratMasuk:    []*domain.SuratMasuk{},
		SuratKeluar:   []*domain.SuratKeluar{},
		DisposisiDari: []*domain.Disposisi{},
		DisposisiKe:   []*domain.Disposisi{},
	}, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, roleIDs []string) (map[string]int64, error) {
	groups, err := r.CountGroupBy(ctx, nil, "role_id")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(roleIDs))
	for _, g := range groups {
		out[g.Value] = g.Count
	}
	return out, nil
}

type SuratMasukRepo struct {
	*Store[domain.SuratMasuk, domain.SuratMasukFilter]
}

func NewSuratMasukRepo() *SuratMasukRepo {
	return &SuratMasukRepo{NewStore(
		func(s *domain.SuratMasuk) *domain.SQLModel { return &s.SQLModel },
		func(s *domain.SuratMasuk, f *domain.SuratMasukFilter) bool {
			return eqPtr(f.ID, s.ID) && nePtr(f.IDNe, s.ID) && eqPtr(f.NomorSurat, s.NomorSurat) &&
				eqPtr(f.PenerimaID, s.PenerimaID) && eqPtr(f.Status, s.Status) && eqPtr(f.SifatSurat, s.SifatSurat) &&
				containsFold(f.SearchTerm, s.NomorSurat, s.Pengirim, s.Perihal) && inRange(f.CreatedWithin, &s.SQLModel)
		},
		map[string]func(*domain.SuratMasuk) string{
			"status":      func(s *domain.SuratMasuk) string { return string(s.Status) },
			"sifat_surat": func(s *domain.SuratMasuk) string { return string(s.SifatSurat) },
		},
	)}
}

func (r *SuratMasukRepo) LockByID(ctx context.Context, id string) (*domain.SuratMasuk, error) {
	return r.FindByID(ctx, id, nil)
}

func (r *SuratMasukRepo) UpdateStatus(_ context.Context, id string, status domain.StatusSuratMasuk) error {
	return r.Modify(id, func(s *domain.SuratMasuk) { s.Status = status })
}

type SuratKeluarRepo struct {
	*Store[domain.SuratKeluar, domain.SuratKeluarFilter]
}

func NewSuratKeluarRepo() *SuratKeluarRepo {
	return &SuratKeluarRepo{NewStore(
		func(s *domain.SuratKeluar) *domain.SQLModel { return &s.SQLModel },
		func(s *domain.SuratKeluar, f *domain.SuratKeluarFilter) bool {
			return eqPtr(f.ID, s.ID) && nePtr(f.IDNe, s.ID) && eqPtr(f.NomorSurat, s.NomorSurat) &&
				eqPtr(f.PengirimID, s.PengirimID) && eqPtr(f.Status, s.Status) && eqPtr(f.SifatSurat, s.SifatSurat) &&
				containsFold(f.SearchTerm, s.NomorSurat, s.Penerima, s.Perihal) && inRange(f.CreatedWithin, &s.SQLModel)
		},
		map[string]func(*domain.SuratKeluar) string{
			"status":      func(s *domain.SuratKeluar) string { return string(s.Status) },
			"sifat_surat": func(s *domain.SuratKeluar) string { return string(s.SifatSurat) },
		},
	)}
}

func (r *SuratKeluarRepo) LockByID(ctx context.Context, id string) (*domain.SuratKeluar, error) {
	return r.FindByID(ctx, id, nil)
}

func (r *SuratKeluarRepo) UpdateStatus(_ context.Context, id string, status domain.StatusSuratKeluar) error {
	return r.Modify(id, func(s *domain.SuratKeluar) { s.Status = status })
}

type DisposisiRepo struct {
	*Store[domain.Disposisi, domain.DisposisiFilter]
}

func NewDisposisiRepo() *DisposisiRepo {
	return &DisposisiRepo{NewStore(
		func(d *domain.Disposisi) *domain.SQLModel { return &d.SQLModel },
		func(d *domain.Disposisi, f *domain.DisposisiFilter) bool {
			return eqPtr(f.ID, d.ID) && nePtr(f.IDNe, d.ID) && eqPtr(f.SuratMasukID, d.SuratMasukID) &&
				eqPtr(f.DariID, d.DariID) && eqPtr(f.KeID, d.KeID) && eqPtr(f.Status, d.Status) &&
				(f.UserID == nil || *f.UserID == d.DariID || *f.UserID == d.KeID) &&
				inRange(f.CreatedWithin, &d.SQLModel)
		},
		map[string]func(*domain.Disposisi) string{
			"status": func(d *domain.Disposisi) string { return string(d.Status) },
		},
	)}
}

type ArsipRepo struct {
	*Store[domain.Arsip, domain.ArsipFilter]
}

func NewArsipRepo() *ArsipRepo {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return &ArsipRepo{NewStore(
		func(a *domain.Arsip) *domain.SQLModel { return &a.SQLModel },
		func(a *domain.Arsip, f *domain.ArsipFilter) bool {
			return eqPtr(f.ID, a.ID) && eqPtr(f.SuratMasukID, deref(a.SuratMasukID)) &&
				eqPtr(f.SuratKeluarID, deref(a.SuratKeluarID)) && eqPtr(f.DiarsipkanOlehID, a.DiarsipkanOlehID) &&
				eqPtr(f.JenisSurat, a.JenisSurat) && eqPtr(f.Kategori, a.Kategori) && eqPtr(f.StatusArsip, a.StatusArsip) &&
				containsFold(f.SearchTerm, a.Kategori, a.LokasiArsip) && inRange(f.CreatedWithin, &a.SQLModel)
		},
		map[string]func(*domain.Arsip) string{
			"kategori":     func(a *domain.Arsip) string { return a.Kategori },
			"status_arsip": func(a *domain.Arsip) string { return string(a.StatusArsip) },
			"jenis_surat":  func(a *domain.Arsip) string { return string(a.JenisSurat) },
		},
	)}
}
