package gemini

import (
	"fmt"
	"strings"
	"time"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
)

const classifierInstruction = `You are the assistant of a small farm bookkeeping ledger.
When the user reports buying goods, call catat_barang_masuk.
When the user reports selling goods, call catat_barang_keluar.
When the user asks about money received or spent, call cek_laporan and pass their question in pertanyaan.
For anything else, answer conversationally in the user's language and do not call any function.
Never guess missing amounts or quantities; only call a function when every required argument is present in the message.`

// intentDeclarations returns the three callable function schemas the
// classifier may select from.
func intentDeclarations() []functionDeclaration {
	recordParams := func(desc string) *schema {
		return &schema{
			Type:        "object",
			Description: desc,
			Properties: map[string]*schema{
				"nama":        {Type: "string", Description: "Item name, e.g. pakan"},
				"jumlah":      {Type: "number", Description: "Quantity, must be greater than zero"},
				"satuan":      {Type: "string", Description: "Unit of the quantity, e.g. kg"},
				"total_harga": {Type: "number", Description: "Total price in rupiah, must be greater than zero"},
			},
			Required: []string{"nama", "jumlah", "satuan", "total_harga"},
		}
	}

	return []functionDeclaration{
		{
			Name:        dto.FnRecordItemIn,
			Description: "Record goods bought for the farm (item inflow, cash outflow).",
			Parameters:  recordParams("Purchase to record"),
		},
		{
			Name:        dto.FnRecordItemOut,
			Description: "Record goods sold by the farm (item outflow, cash inflow).",
			Parameters:  recordParams("Sale to record"),
		},
		{
			Name:        dto.FnCheckReport,
			Description: "Answer a question about money received (masuk) or spent (keluar).",
			Parameters: &schema{
				Type: "object",
				Properties: map[string]*schema{
					"jenis":      {Type: "string", Enum: []string{"masuk", "keluar"}, Description: "Cash direction to report on"},
					"pertanyaan": {Type: "string", Description: "The user's original question, verbatim, if they asked one"},
				},
				Required: []string{"jenis"},
			},
		},
	}
}

// summarizerInstruction embeds the current date and the complete line-item
// set. The model is told to answer strictly from the listed entries: the
// prompt is the only place the no-fabrication policy can be enforced.
func summarizerInstruction(lines []domain.ReportLine, asOf time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s.\n", asOf.Format("2006-01-02"))
	b.WriteString("Answer the user's bookkeeping question using ONLY the cash ledger entries listed below.\n")
	b.WriteString("Do not invent entries or figures that are not listed. If the entries cannot answer the question, say so.\n")
	b.WriteString("Ledger entries (date | memo | amount in rupiah):\n")
	if len(lines) == 0 {
		b.WriteString("(no entries)\n")
		return b.String()
	}
	for _, line := range lines {
		fmt.Fprintf(&b, "%s | %s | %s\n", line.Date.Format("2006-01-02"), line.Memo, line.Amount.String())
	}
	return b.String()
}
