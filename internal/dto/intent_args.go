package dto

import "github.com/shopspring/decimal"

// Function names declared to the classifier. The Indonesian names match the
// vocabulary the model is prompted with.
const (
	FnRecordItemIn  = "catat_barang_masuk"
	FnRecordItemOut = "catat_barang_keluar"
	FnCheckReport   = "cek_laporan"
)

// RecordItemArgs is the argument payload of catat_barang_masuk and
// catat_barang_keluar. Decimal fields are checked for positivity in code;
// validator covers presence of the string fields.
type RecordItemArgs struct {
	Nama       string          `json:"nama" validate:"required"`
	Jumlah     decimal.Decimal `json:"jumlah"`
	Satuan     string          `json:"satuan" validate:"required"`
	TotalHarga decimal.Decimal `json:"total_harga"`
}

// ReportArgs is the argument payload of cek_laporan. Pertanyaan carries the
// user's free-form question when one was asked; an empty value requests a
// plain total.
type ReportArgs struct {
	Jenis      string `json:"jenis" validate:"required,oneof=masuk keluar"`
	Pertanyaan string `json:"pertanyaan"`
}
