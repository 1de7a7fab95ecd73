package domain

// Status rules for letters. Usecases apply them inside the same transaction as the write that triggers them.

// SuratMasukStatusOnDisposisiCreated is the status an incoming letter takes when a disposition is created for it.
// An archived letter stays archived.
func SuratMasukStatusOnDisposisiCreated(current StatusSuratMasuk) StatusSuratMasuk {
	if current == StatusSuratMasukDiarsipkan {
		return current
	}
	return StatusSuratMasukDiproses
}

// SuratMasukStatusOnDisposisiResolved is the status an incoming letter takes after one of its dispositions
// is marked Selesai, given how many of its dispositions are still Pending.
// The second result is false when the letter must not change.
func SuratMasukStatusOnDisposisiResolved(current StatusSuratMasuk, pending int64) (StatusSuratMasuk, bool) {
	if pending > 0 || current == StatusSuratMasukDiarsipkan || current == StatusSuratMasukSelesai {
		return current, false
	}
	return StatusSuratMasukSelesai, true
}

// DisposisiResolved reports whether an update sets a disposition to Selesai.
func DisposisiResolved(req *DisposisiUpdateRequest) bool {
	return req != nil && req.Status != nil && *req.Status == StatusDisposisiSelesai
}
