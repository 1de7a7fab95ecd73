package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/lo"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/testutil"
)

func newTestUsecase(t *testing.T) (*arsipUsecase, *testutil.Fixtures, *testutil.Transactor) {
	t.Helper()
	fx := testutil.NewFixtures()
	tx := &testutil.Transactor{}
	uc := NewArsipUsecase(fx.Arsip, fx.SuratMasuk, fx.SuratKeluar, fx.Users, tx, &testutil.Invalidator{}).(*arsipUsecase)
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return uc, fx, tx
}

func TestArsipCreate(t *testing.T) {
	uc, fx, tx := newTestUsecase(t)
	petugas := fx.AddUser("Petugas Arsip", nil)
	masuk := fx.AddSuratMasuk("001/SM/2024", petugas)
	keluar := fx.AddSuratKeluar("001/SK/2024", petugas)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.ArsipCreateRequest
		wantErr error
	}{
		{
			name: "surat masuk",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratMasuk, SuratMasukID: &masuk.ID,
				Kategori: "Undangan", Retensi: 5, DiarsipkanOlehID: petugas.ID,
			},
		},
		{
			name: "surat keluar",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratKeluar, SuratKeluarID: &keluar.ID,
				Kategori: "Laporan", DiarsipkanOlehID: petugas.ID,
			},
		},
		{
			name: "missing subject id",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratMasuk, Kategori: "Undangan", DiarsipkanOlehID: petugas.ID,
			},
			wantErr: domain.ErrMissingRequiredField,
		},
		{
			name: "both subjects",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratMasuk, SuratMasukID: &masuk.ID, SuratKeluarID: &keluar.ID,
				Kategori: "Undangan", DiarsipkanOlehID: petugas.ID,
			},
			wantErr: domain.ErrArsipSubjectMismatch,
		},
		{
			name: "unknown letter",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratKeluar, SuratKeluarID: lo.ToPtr("missing"),
				Kategori: "Laporan", DiarsipkanOlehID: petugas.ID,
			},
			wantErr: domain.ErrSuratKeluarNotFound,
		},
		{
			name: "unknown pengarsip",
			req: domain.ArsipCreateRequest{
				JenisSurat: domain.JenisSuratMasuk, SuratMasukID: &masuk.ID,
				Kategori: "Undangan", DiarsipkanOlehID: "missing",
			},
			wantErr: domain.ErrPengarsipNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := uc.Create(ctx, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if a.StatusArsip != domain.StatusArsipAktif {
				t.Errorf("statusArsip = %q, want Aktif", a.StatusArsip)
			}
			if !a.TanggalArsip.Equal(uc.now()) {
				t.Errorf("tanggalArsip = %v", a.TanggalArsip)
			}
		})
	}

	gotMasuk, _ := fx.SuratMasuk.FindByID(ctx, masuk.ID, nil)
	gotKeluar, _ := fx.SuratKeluar.FindByID(ctx, keluar.ID, nil)
	if gotMasuk.Status != domain.StatusSuratMasukDiarsipkan || gotKeluar.Status != domain.StatusSuratKeluarDiarsipkan {
		t.Errorf("letter statuses = %q, %q, want Diarsipkan", gotMasuk.Status, gotKeluar.Status)
	}
	if tx.Calls.Load() != 2 {
		t.Errorf("transactions = %d, want 2", tx.Calls.Load())
	}
}

func TestArsipUpdateAndDelete(t *testing.T) {
	uc, fx, _ := newTestUsecase(t)
	petugas := fx.AddUser("Petugas Arsip", nil)
	masuk := fx.AddSuratMasuk("001/SM/2024", petugas)
	ctx := context.Background()

	a, err := uc.Create(ctx, &domain.ArsipCreateRequest{
		JenisSurat: domain.JenisSuratMasuk, SuratMasukID: &masuk.ID, Kategori: "Undangan", DiarsipkanOlehID: petugas.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := uc.Update(ctx, a.ID, &domain.ArsipUpdateRequest{
		StatusArsip: lo.ToPtr(domain.StatusArsipInaktif),
		LokasiArsip: lo.ToPtr("Lemari B-2"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.StatusArsip != domain.StatusArsipInaktif || got.LokasiArsip != "Lemari B-2" || got.Kategori != "Undangan" {
		t.Errorf("got %+v", got)
	}
	if _, err := uc.Update(ctx, a.ID, &domain.ArsipUpdateRequest{Retensi: lo.ToPtr(-1)}); !errors.Is(err, domain.ErrInvalidField) {
		t.Errorf("Update(negative retensi) error = %v", err)
	}

	if err := uc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := uc.Delete(ctx, a.ID); !errors.Is(err, domain.ErrArsipNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
	stored, _ := fx.SuratMasuk.FindByID(ctx, masuk.ID, nil)
	if stored.Status != domain.StatusSuratMasukDiarsipkan {
		t.Errorf("letter status = %q, want still Diarsipkan", stored.Status)
	}
}
