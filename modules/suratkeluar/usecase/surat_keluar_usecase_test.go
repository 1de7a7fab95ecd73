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

func newTestUsecase() (domain.SuratKeluarUsecase, *testutil.Fixtures, *testutil.Invalidator) {
	fx := testutil.NewFixtures()
	stats := &testutil.Invalidator{}
	return NewSuratKeluarUsecase(fx.SuratKeluar, fx.Arsip, fx.Users, &testutil.Transactor{}, stats), fx, stats
}

func TestSuratKeluarCreate(t *testing.T) {
	uc, fx, stats := newTestUsecase()
	pengirim := fx.AddUser("Kepala Dinas", nil)
	fx.AddSuratKeluar("001/SK/2024", pengirim)

	base := domain.SuratKeluarCreateRequest{
		NomorSurat:   "002/SK/2024",
		TanggalSurat: domain.Date(time.Now()),
		Penerima:     "Gubernur",
		Perihal:      "Laporan triwulan",
		SifatSurat:   domain.SifatSuratBiasa,
		PengirimID:   pengirim.ID,
	}

	tests := []struct {
		name       string
		mutate     func(r *domain.SuratKeluarCreateRequest)
		wantStatus domain.StatusSuratKeluar
		wantErr    error
	}{
		{name: "defaults to draft", mutate: func(*domain.SuratKeluarCreateRequest) {}, wantStatus: domain.StatusSuratKeluarDraft},
		{
			name: "explicit status",
			mutate: func(r *domain.SuratKeluarCreateRequest) {
				r.NomorSurat = "003/SK/2024"
				r.Status = domain.StatusSuratKeluarDisetujui
			},
			wantStatus: domain.StatusSuratKeluarDisetujui,
		},
		{name: "unknown pengirim", mutate: func(r *domain.SuratKeluarCreateRequest) { r.PengirimID = "missing" }, wantErr: domain.ErrPengirimNotFound},
		{name: "duplicate nomor", mutate: func(r *domain.SuratKeluarCreateRequest) { r.NomorSurat = "001/SK/2024" }, wantErr: domain.ErrNomorSuratAlreadyExists},
		{name: "bad sifat", mutate: func(r *domain.SuratKeluarCreateRequest) { r.SifatSurat = "Kilat" }, wantErr: domain.ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			surat, err := uc.Create(context.Background(), &req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if surat.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", surat.Status, tt.wantStatus)
			}
			if surat.Pengirim == nil {
				t.Error("pengirim not attached")
			}
		})
	}
	if stats.Calls.Load() != 2 {
		t.Errorf("invalidations = %d, want 2", stats.Calls.Load())
	}
}

func TestSuratKeluarUpdate(t *testing.T) {
	uc, fx, _ := newTestUsecase()
	pengirim := fx.AddUser("Kepala Dinas", nil)
	fx.AddSuratKeluar("001/SK/2024", pengirim)
	surat := fx.AddSuratKeluar("002/SK/2024", pengirim)

	got, err := uc.Update(context.Background(), surat.ID, &domain.SuratKeluarUpdateRequest{
		Status:  lo.ToPtr(domain.StatusSuratKeluarDikirim),
		Catatan: lo.ToPtr(" dikirim lewat pos "),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Status != domain.StatusSuratKeluarDikirim || got.Catatan != "dikirim lewat pos" {
		t.Errorf("got status %q catatan %q", got.Status, got.Catatan)
	}

	_, err = uc.Update(context.Background(), surat.ID, &domain.SuratKeluarUpdateRequest{NomorSurat: lo.ToPtr("001/SK/2024")})
	if !errors.Is(err, domain.ErrNomorSuratAlreadyExists) {
		t.Errorf("Update(taken nomor) error = %v", err)
	}
	stored, _ := fx.SuratKeluar.FindByID(context.Background(), surat.ID, nil)
	if stored.NomorSurat != "002/SK/2024" {
		t.Errorf("failed update leaked into store: %q", stored.NomorSurat)
	}
}

func TestSuratKeluarDelete(t *testing.T) {
	uc, fx, _ := newTestUsecase()
	pengirim := fx.AddUser("Kepala Dinas", nil)
	surat := fx.AddSuratKeluar("001/SK/2024", pengirim)
	ctx := context.Background()
	_ = fx.Arsip.Create(ctx, &domain.Arsip{JenisSurat: domain.JenisSuratKeluar, SuratKeluarID: &surat.ID, Kategori: "Keuangan", DiarsipkanOlehID: pengirim.ID})

	if err := uc.Delete(ctx, surat.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n := len(fx.Arsip.Rows()); n != 0 {
		t.Errorf("arsip left = %d, want 0", n)
	}
	if err := uc.Delete(ctx, surat.ID); !errors.Is(err, domain.ErrSuratKeluarNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}
