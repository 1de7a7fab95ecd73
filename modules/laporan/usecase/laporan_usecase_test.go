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

var jakarta = time.FixedZone("WIB", 7*3600)

func newTestUsecase(t *testing.T) (*laporanUsecase, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures()
	uc := NewLaporanUsecase(Sources{
		SuratMasuk:  fx.SuratMasuk,
		SuratKeluar: fx.SuratKeluar,
		Disposisi:   fx.Disposisi,
		Arsip:       fx.Arsip,
		User:        fx.Users,
	}, jakarta).(*laporanUsecase)
	uc.now = func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, jakarta) }
	return uc, fx
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 0, 0, 0, jakarta)
}

// seed stores letters in January and March 2024 and one in 2023.
func seed(fx *testutil.Fixtures) {
	ctx := context.Background()
	staff := fx.AddUser("Staff", nil)
	fx.AddUser("Cuti", nil).IsActive = false

	for i, created := range []time.Time{at(2024, 1, 10), at(2024, 3, 5), at(2024, 3, 18), at(2023, 12, 31)} {
		s := fx.AddSuratMasuk("SM-"+created.Format("20060102")+string(rune('a'+i)), staff)
		s.CreatedAt = created
		d := &domain.Disposisi{SuratMasukID: s.ID, Status: domain.StatusDisposisiPending}
		_ = fx.Disposisi.Create(ctx, d)
		d.CreatedAt = created
	}
	k := fx.AddSuratKeluar("SK-1", staff)
	k.CreatedAt = at(2024, 3, 6)
	k.Status = domain.StatusSuratKeluarDikirim

	a := &domain.Arsip{JenisSurat: domain.JenisSuratKeluar, SuratKeluarID: &k.ID, Kategori: "Keuangan", StatusArsip: domain.StatusArsipAktif}
	_ = fx.Arsip.Create(ctx, a)
	a.CreatedAt = at(2024, 3, 7)
}

func TestGenerateSemua(t *testing.T) {
	uc, fx := newTestUsecase(t)
	seed(fx)

	from, to := at(2024, 3, 1), at(2024, 3, 31)
	got, err := uc.Generate(context.Background(), domain.JenisLaporanSemua, domain.DateRange{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	detail, ok := got.Data.(*domain.LaporanDetail)
	if !ok {
		t.Fatalf("data = %T, want *LaporanDetail", got.Data)
	}
	if detail.SuratMasuk.Total != 2 || len(detail.SuratMasuk.Data) != 2 {
		t.Errorf("suratMasuk total = %d", detail.SuratMasuk.Total)
	}
	if detail.Disposisi.Total != 2 {
		t.Errorf("disposisi total = %d, want 2", detail.Disposisi.Total)
	}
	if rows := detail.SuratKeluar.Summary["byStatus"]; len(rows) != 1 || rows[0].Value != "Dikirim" {
		t.Errorf("suratKeluar byStatus = %+v", rows)
	}
	for _, key := range []string{"byKategori", "byStatusArsip", "byJenisSurat"} {
		if len(detail.Arsip.Summary[key]) != 1 {
			t.Errorf("arsip %s = %+v", key, detail.Arsip.Summary[key])
		}
	}
	if got.Meta.JenisLaporan != domain.JenisLaporanSemua || !got.Meta.TanggalMulai.Equal(from) {
		t.Errorf("meta = %+v", got.Meta)
	}
}

func TestGenerateEmptyRangeNeverNull(t *testing.T) {
	uc, fx := newTestUsecase(t)
	seed(fx)

	from := at(2030, 1, 1)
	got, err := uc.Generate(context.Background(), domain.JenisLaporanSuratMasuk, domain.DateRange{From: &from})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	report := got.Data.(*domain.EntityReport[domain.SuratMasuk])
	if report.Total != 0 || report.Data == nil {
		t.Errorf("report = %+v", report)
	}
	for key, rows := range report.Summary {
		if rows == nil {
			t.Errorf("summary %s is nil", key)
		}
	}
}

func TestGenerateBulanan(t *testing.T) {
	uc, fx := newTestUsecase(t)
	seed(fx)

	tests := []struct {
		name      string
		rng       domain.DateRange
		wantBulan int
		wantMasuk int64
	}{
		{"defaults to current month", domain.DateRange{}, 3, 2},
		{"month of tanggalMulai", domain.DateRange{From: lo.ToPtr(at(2024, 1, 20))}, 1, 1},
		{"tanggalSelesai cuts the month", domain.DateRange{From: lo.ToPtr(at(2024, 3, 1)), To: lo.ToPtr(at(2024, 3, 10))}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Generate(context.Background(), domain.JenisLaporanBulanan, tt.rng)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			b := got.Data.(*domain.LaporanBulanan)
			if b.Periode.Bulan != tt.wantBulan || b.Periode.Tahun != 2024 || b.Periode.NamaBulan != domain.NamaBulan(time.Month(tt.wantBulan)) {
				t.Errorf("periode = %+v", b.Periode)
			}
			if b.Ringkasan.TotalSuratMasuk != tt.wantMasuk {
				t.Errorf("totalSuratMasuk = %d, want %d", b.Ringkasan.TotalSuratMasuk, tt.wantMasuk)
			}
			if b.Ringkasan.TotalUsersAktif == nil || *b.Ringkasan.TotalUsersAktif != 1 {
				t.Errorf("totalUsersAktif = %v, want 1", b.Ringkasan.TotalUsersAktif)
			}
		})
	}
}

func TestGenerateTahunan(t *testing.T) {
	uc, fx := newTestUsecase(t)
	seed(fx)

	got, err := uc.Generate(context.Background(), domain.JenisLaporanTahunan, domain.DateRange{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	y := got.Data.(*domain.LaporanTahunan)
	if y.Periode.Tahun != 2024 || len(y.DataPerBulan) != 12 {
		t.Fatalf("periode = %+v, buckets = %d", y.Periode, len(y.DataPerBulan))
	}
	jan, mar := y.DataPerBulan[0], y.DataPerBulan[2]
	if jan.NamaBulan != "Januari" || jan.SuratMasuk != 1 || jan.Disposisi != 1 {
		t.Errorf("januari = %+v", jan)
	}
	if mar.SuratMasuk != 2 || mar.SuratKeluar != 1 {
		t.Errorf("maret = %+v", mar)
	}
	if y.Ringkasan.TotalSuratMasuk != 3 || y.Ringkasan.TotalUsersAktif != nil {
		t.Errorf("ringkasan = %+v", y.Ringkasan)
	}
}

func TestGenerateError(t *testing.T) {
	uc, fx := newTestUsecase(t)
	boom := errors.New("connection reset")
	fx.Disposisi.Err = boom

	if _, err := uc.Generate(context.Background(), domain.JenisLaporanSemua, domain.DateRange{}); !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want %v", err, boom)
	}
}
