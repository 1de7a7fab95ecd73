package validator

const (
	Email             = "email"
	Min               = "min"
	Max               = "max"
	Gte               = "gte"
	Required          = "required"
	PhoneNumber       = "phone_number"
	NotEmpty          = "not_empty"
	SifatSurat        = "sifat_surat"
	StatusSuratMasuk  = "status_surat_masuk"
	StatusSuratKeluar = "status_surat_keluar"
	StatusDisposisi   = "status_disposisi"
	JenisSurat        = "jenis_surat"
	StatusArsip       = "status_arsip"
	Permission        = "permission"
)
