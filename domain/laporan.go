package domain

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/realboxofme/sintas/pkg/utils"
)

var (
	ErrInvalidTanggal = &DetailedError{
		IDField:         "INVALID_TANGGAL",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Format tanggal tidak valid, gunakan YYYY-MM-DD",
		StatusCodeField: http.StatusBadRequest,
	}
	ErrInvalidDateRange = &DetailedError{
		IDField:         "INVALID_DATE_RANGE",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "Tanggal mulai tidak boleh setelah tanggal selesai",
		StatusCodeField: http.StatusBadRequest,
	}
)

type JenisLaporan string

const (
	JenisLaporanSuratMasuk  JenisLaporan = "surat-masuk"
	JenisLaporanSuratKeluar JenisLaporan = "surat-keluar"
	JenisLaporanDisposisi   JenisLaporan = "disposisi"
	JenisLaporanArsip       JenisLaporan = "arsip"
	JenisLaporanBulanan     JenisLaporan = "bulanan"
	JenisLaporanTahunan     JenisLaporan = "tahunan"
	JenisLaporanSemua       JenisLaporan = "semua"
)

// ParseJenisLaporan maps a query value to a report kind. Absent or unknown values mean semua.
func ParseJenisLaporan(s string) JenisLaporan {
	switch j := JenisLaporan(s); j {
	case JenisLaporanSuratMasuk, JenisLaporanSuratKeluar, JenisLaporanDisposisi,
		JenisLaporanArsip, JenisLaporanBulanan, JenisLaporanTahunan:
		return j
	default:
		return JenisLaporanSemua
	}
}

var namaBulan = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// NamaBulan returns the Indonesian name of a month.
func NamaBulan(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return namaBulan[m-1]
}

// EntityReport is the per-entity section of a report.
type EntityReport[T any] struct {
	Total   int64                   `json:"total"`
	Data    []*T                    `json:"data"`
	Summary map[string][]GroupCount `json:"summary"`
}

type LaporanDetail struct {
	SuratMasuk  *EntityReport[SuratMasuk]  `json:"suratMasuk"`
	SuratKeluar *EntityReport[SuratKeluar] `json:"suratKeluar"`
	Disposisi   *EntityReport[Disposisi]   `json:"disposisi"`
	Arsip       *EntityReport[Arsip]       `json:"arsip"`
}

type PeriodeBulanan struct {
	Bulan     int    `json:"bulan"`
	Tahun     int    `json:"tahun"`
	NamaBulan string `json:"namaBulan"`
}

type RingkasanLaporan struct {
	TotalSuratMasuk  int64  `json:"totalSuratMasuk"`
	TotalSuratKeluar int64  `json:"totalSuratKeluar"`
	TotalDisposisi   int64  `json:"totalDisposisi"`
	TotalArsip       int64  `json:"totalArsip"`
	TotalUsersAktif  *int64 `json:"totalUsersAktif,omitempty"`
}

type LaporanBulanan struct {
	Periode   PeriodeBulanan   `json:"periode"`
	Ringkasan RingkasanLaporan `json:"ringkasan"`
	Detail    *LaporanDetail   `json:"detail"`
}

type PeriodeTahunan struct {
	Tahun int `json:"tahun"`
}

type DataBulan struct {
	Bulan       int    `json:"bulan"`
	NamaBulan   string `json:"namaBulan"`
	SuratMasuk  int64  `json:"suratMasuk"`
	SuratKeluar int64  `json:"suratKeluar"`
	Disposisi   int64  `json:"disposisi"`
}

type LaporanTahunan struct {
	Periode      PeriodeTahunan   `json:"periode"`
	Ringkasan    RingkasanLaporan `json:"ringkasan"`
	DataPerBulan []DataBulan      `json:"dataPerBulan"`
	Detail       *LaporanDetail   `json:"detail"`
}

type LaporanMeta struct {
	JenisLaporan   JenisLaporan `json:"jenisLaporan"`
	TanggalMulai   *time.Time   `json:"tanggalMulai,omitempty"`
	TanggalSelesai *time.Time   `json:"tanggalSelesai,omitempty"`
	GeneratedAt    time.Time    `json:"generatedAt"`
}

type Laporan struct {
	Data any         `json:"data"`
	Meta LaporanMeta `json:"meta"`
}

type LaporanRequest struct {
	Jenis          string `form:"jenis"`
	TanggalMulai   string `form:"tanggalMulai"`
	TanggalSelesai string `form:"tanggalSelesai"`
}

// Range parses the request bounds in loc. A date-only tanggalSelesai covers the whole day.
func (r *LaporanRequest) Range(loc *time.Location) (DateRange, error) {
	var rng DateRange
	parse := func(s string, endOfDay bool) (*time.Time, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		d, err := ParseDate(s)
		if err != nil {
			return nil, ErrInvalidTanggal.WithWrap(err)
		}
		t := d.Time()
		if len(s) == len(DateLayout) {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
			if endOfDay {
				t = utils.EndOfDay(t)
			}
		}
		return &t, nil
	}

	var err error
	if rng.From, err = parse(r.TanggalMulai, false); err != nil {
		return rng, err
	}
	if rng.To, err = parse(r.TanggalSelesai, true); err != nil {
		return rng, err
	}
	if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
		return rng, ErrInvalidDateRange
	}
	return rng, nil
}

type LaporanUsecase interface {
	Generate(ctx context.Context, jenis JenisLaporan, rng DateRange) (*Laporan, error)
}

/*******************************
*       Dashboard statistics   *
*******************************/

type DashboardOverview struct {
	TotalSuratMasuk       int64 `json:"totalSuratMasuk"`
	TotalSuratKeluar      int64 `json:"totalSuratKeluar"`
	TotalDisposisiPending int64 `json:"totalDisposisiPending"`
	TotalArsip            int64 `json:"totalArsip"`
	TotalUsers            int64 `json:"totalUsers"`
	SuratMasukBulanIni    int64 `json:"suratMasukBulanIni"`
	SuratKeluarBulanIni   int64 `json:"suratKeluarBulanIni"`
}

type LetterBreakdown struct {
	SuratMasuk  []GroupCount `json:"suratMasuk"`
	SuratKeluar []GroupCount `json:"suratKeluar"`
}

type MonthlyChartPoint struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	MonthName   string `json:"monthName"`
	SuratMasuk  int64  `json:"suratMasuk"`
	SuratKeluar int64  `json:"suratKeluar"`
}

type DashboardStats struct {
	Overview     DashboardOverview   `json:"overview"`
	ByStatus     LetterBreakdown     `json:"byStatus"`
	BySifat      LetterBreakdown     `json:"bySifat"`
	MonthlyChart []MonthlyChartPoint `json:"monthlyChart"`
}

type DashboardRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=1970,max=9999"`
}

type DashboardUsecase interface {
	Stats(ctx context.Context, month, year int) (*DashboardStats, error)
}

// StatsInvalidator drops cached dashboard statistics after a write that changes them.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}
