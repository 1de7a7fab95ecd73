package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/utils"
)

// Source is the read side of a repository a report section is built from.
type Source[T any, F any] interface {
	FindMany(ctx context.Context, filter *F, option *domain.FindManyOption) ([]*T, error)
	Count(ctx context.Context, filter *F) (int64, error)
	CountGroupBy(ctx context.Context, filter *F, column string) ([]domain.GroupCount, error)
}

type UserRepository interface {
	Count(ctx context.Context, filter *domain.UserFilter) (int64, error)
}

type Sources struct {
	SuratMasuk  Source[domain.SuratMasuk, domain.SuratMasukFilter]
	SuratKeluar Source[domain.SuratKeluar, domain.SuratKeluarFilter]
	Disposisi   Source[domain.Disposisi, domain.DisposisiFilter]
	Arsip       Source[domain.Arsip, domain.ArsipFilter]
	User        UserRepository
}

type laporanUsecase struct {
	src Sources
	loc *time.Location
	now func() time.Time
}

func NewLaporanUsecase(src Sources, loc *time.Location) domain.LaporanUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &laporanUsecase{src: src, loc: loc, now: time.Now}
}

// section describes one per-entity report: its filter, data ordering and summary groupings.
type section[F any] struct {
	filter  *F
	option  *domain.FindManyOption
	summary map[string]string
}

func buildReport[T any, F any](ctx context.Context, src Source[T, F], s section[F]) (*domain.EntityReport[T], error) {
	report := &domain.EntityReport[T]{Summary: make(map[string][]domain.GroupCount, len(s.summary))}
	groups := make(map[string]*[]domain.GroupCount, len(s.summary))
	for key := range s.summary {
		groups[key] = new([]domain.GroupCount)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.Data, err = src.FindMany(ctx, s.filter, s.option)
		return err
	})
	g.Go(func() (err error) {
		report.Total, err = src.Count(ctx, s.filter)
		return err
	})
	for key, column := range s.summary {
		dst := groups[key]
		g.Go(func() (err error) {
			*dst, err = src.CountGroupBy(ctx, s.filter, column)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if report.Data == nil {
		report.Data = []*T{}
	}
	for key, rows := range groups {
		report.Summary[key] = lo.Ternary(*rows == nil, []domain.GroupCount{}, *rows)
	}
	return report, nil
}

func newestFirst(column string, preloads ...string) *domain.FindManyOption {
	return &domain.FindManyOption{Preloads: preloads, Sort: []string{column + " DESC"}}
}

func (u *laporanUsecase) suratMasuk(ctx context.Context, rng *domain.DateRange) (*domain.EntityReport[domain.SuratMasuk], error) {
	return buildReport(ctx, u.src.SuratMasuk, section[domain.SuratMasukFilter]{
		filter:  &domain.SuratMasukFilter{CreatedWithin: rng},
		option:  newestFirst("created_at", "Penerima"),
		summary: map[string]string{"byStatus": "status", "bySifat": "sifat_surat"},
	})
}

func (u *laporanUsecase) suratKeluar(ctx context.Context, rng *domain.DateRange) (*domain.EntityReport[domain.SuratKeluar], error) {
	return buildReport(ctx, u.src.SuratKeluar, section[domain.SuratKeluarFilter]{
		filter:  &domain.SuratKeluarFilter{CreatedWithin: rng},
		option:  newestFirst("created_at", "Pengirim"),
		summary: map[string]string{"byStatus": "status", "bySifat": "sifat_surat"},
	})
}

func (u *laporanUsecase) disposisi(ctx context.Context, rng *domain.DateRange) (*domain.EntityReport[domain.Disposisi], error) {
	return buildReport(ctx, u.src.Disposisi, section[domain.DisposisiFilter]{
		filter:  &domain.DisposisiFilter{CreatedWithin: rng},
		option:  newestFirst("created_at", "SuratMasuk", "Dari", "Ke"),
		summary: map[string]string{"byStatus": "status"},
	})
}

func (u *laporanUsecase) arsip(ctx context.Context, rng *domain.DateRange) (*domain.EntityReport[domain.Arsip], error) {
	return buildReport(ctx, u.src.Arsip, section[domain.ArsipFilter]{
		filter:  &domain.ArsipFilter{CreatedWithin: rng},
		option:  newestFirst("tanggal_arsip", "SuratMasuk", "SuratKeluar", "DiarsipkanOleh"),
		summary: map[string]string{"byKategori": "kategori", "byStatusArsip": "status_arsip", "byJenisSurat": "jenis_surat"},
	})
}

func (u *laporanUsecase) detail(ctx context.Context, rng *domain.DateRange) (*domain.LaporanDetail, error) {
	d := &domain.LaporanDetail{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.SuratMasuk, err = u.suratMasuk(ctx, rng); return })
	g.Go(func() (err error) { d.SuratKeluar, err = u.suratKeluar(ctx, rng); return })
	g.Go(func() (err error) { d.Disposisi, err = u.disposisi(ctx, rng); return })
	g.Go(func() (err error) { d.Arsip, err = u.arsip(ctx, rng); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func ringkasan(d *domain.LaporanDetail) domain.RingkasanLaporan {
	return domain.RingkasanLaporan{
		TotalSuratMasuk:  d.SuratMasuk.Total,
		TotalSuratKeluar: d.SuratKeluar.Total,
		TotalDisposisi:   d.Disposisi.Total,
		TotalArsip:       d.Arsip.Total,
	}
}

// anchor is the instant a monthly or yearly report is built around.
func (u *laporanUsecase) anchor(rng domain.DateRange) time.Time {
	if rng.From != nil {
		return rng.From.In(u.loc)
	}
	return u.now().In(u.loc)
}

func (u *laporanUsecase) bulanan(ctx context.Context, rng domain.DateRange) (*domain.LaporanBulanan, error) {
	start := utils.MonthStart(u.anchor(rng))
	end := utils.MonthEnd(start)
	if rng.To != nil {
		end = *rng.To
	}
	period := &domain.DateRange{From: &start, To: &end}

	var (
		detail *domain.LaporanDetail
		aktif  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { detail, err = u.detail(gctx, period); return })
	g.Go(func() (err error) {
		aktif, err = u.src.User.Count(gctx, &domain.UserFilter{IsActive: lo.ToPtr(true)})
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := ringkasan(detail)
	sum.TotalUsersAktif = &aktif
	return &domain.LaporanBulanan{
		Periode: domain.PeriodeBulanan{
			Bulan:     int(start.Month()),
			Tahun:     start.Year(),
			NamaBulan: domain.NamaBulan(start.Month()),
		},
		Ringkasan: sum,
		Detail:    detail,
	}, nil
}

// tahunan counts each month in turn, running the three counts of a month together.
func (u *laporanUsecase) tahunan(ctx context.Context, rng domain.DateRange) (*domain.LaporanTahunan, error) {
	year := u.anchor(rng).Year()
	start, end := utils.YearStart(year, u.loc), utils.YearEnd(year, u.loc)

	buckets := make([]domain.DataBulan, 0, 12)
	for m := time.January; m <= time.December; m++ {
		from := time.Date(year, m, 1, 0, 0, 0, 0, u.loc)
		to := utils.MonthEnd(from)
		month := &domain.DateRange{From: &from, To: &to}
		b := domain.DataBulan{Bulan: int(m), NamaBulan: domain.NamaBulan(m)}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			b.SuratMasuk, err = u.src.SuratMasuk.Count(gctx, &domain.SuratMasukFilter{CreatedWithin: month})
			return
		})
		g.Go(func() (err error) {
			b.SuratKeluar, err = u.src.SuratKeluar.Count(gctx, &domain.SuratKeluarFilter{CreatedWithin: month})
			return
		})
		g.Go(func() (err error) {
			b.Disposisi, err = u.src.Disposisi.Count(gctx, &domain.DisposisiFilter{CreatedWithin: month})
			return
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}

	detail, err := u.detail(ctx, &domain.DateRange{From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	return &domain.LaporanTahunan{
		Periode:      domain.PeriodeTahunan{Tahun: year},
		Ringkasan:    ringkasan(detail),
		DataPerBulan: buckets,
		Detail:       detail,
	}, nil
}

func (u *laporanUsecase) Generate(ctx context.Context, jenis domain.JenisLaporan, rng domain.DateRange) (*domain.Laporan, error) {
	var (
		data any
		err  error
	)
	switch jenis {
	case domain.JenisLaporanSuratMasuk:
		data, err = u.suratMasuk(ctx, &rng)
	case domain.JenisLaporanSuratKeluar:
		data, err = u.suratKeluar(ctx, &rng)
	case domain.JenisLaporanDisposisi:
		data, err = u.disposisi(ctx, &rng)
	case domain.JenisLaporanArsip:
		data, err = u.arsip(ctx, &rng)
	case domain.JenisLaporanBulanan:
		data, err = u.bulanan(ctx, rng)
	case domain.JenisLaporanTahunan:
		data, err = u.tahunan(ctx, rng)
	default:
		jenis = domain.JenisLaporanSemua
		data, err = u.detail(ctx, &rng)
	}
	if err != nil {
		return nil, err
	}

	return &domain.Laporan{
		Data: data,
		Meta: domain.LaporanMeta{
			JenisLaporan:   jenis,
			TanggalMulai:   rng.From,
			TanggalSelesai: rng.To,
			GeneratedAt:    u.now(),
		},
	}, nil
}
