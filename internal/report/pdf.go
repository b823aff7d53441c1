package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// The three exports mirror the report tabs: sales recap, low-stock list,
// and expiring list. Layout follows the original export: emerald title,
// generated stamp, separator line, then one grid table.

// SalesPDF renders the sales recap for a period.
func SalesPDF(sales []models.Sale, totalRevenue float64, periodLabel string) (*bytes.Buffer, error) {
	pdf := newReportPDF()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, "Ringkasan Penjualan", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Periode: "+periodLabel, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Total Revenue: "+formatRupiah(totalRevenue), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Transaksi: %d", len(sales)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		details := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			details = append(details, fmt.Sprintf("%s (x%d)", item.Name, item.Quantity))
		}
		rows = append(rows, []string{
			millisDateTime(sale.CreatedAt),
			strings.Join(details, ", "),
			formatRupiah(sale.Total),
		})
	}

	drawTable(pdf,
		[]string{"Waktu Transaksi", "Detail Item", "Total"},
		[]float64{45, 100, 37},
		rows,
		[3]int{16, 185, 129})

	return output(pdf)
}

// LowStockPDF renders the restock list.
func LowStockPDF(items []models.Medicine) (*bytes.Buffer, error) {
	pdf := newReportPDF()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, "Laporan Stok Menipis (Low Stock)", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Name,
			fmt.Sprintf("%d", item.Stock),
			fmt.Sprintf("%d", item.MinStock),
			"RESTOCK",
		})
	}

	drawTable(pdf,
		[]string{"Nama Produk", "Sisa Stok", "Min. Limit", "Status"},
		[]float64{92, 30, 30, 30},
		rows,
		[3]int{245, 158, 11})

	return output(pdf)
}

// ExpiringPDF renders the expiry watch list.
func ExpiringPDF(items []models.Medicine, daysAhead int) (*bytes.Buffer, error) {
	pdf := newReportPDF()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, fmt.Sprintf("Laporan Kadaluarsa (%d hari ke depan)", daysAhead), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		expiry := "-"
		if item.ExpiredAt != nil {
			expiry = time.UnixMilli(*item.ExpiredAt).Format("02/01/2006")
		}
		rows = append(rows, []string{
			item.Name,
			fmt.Sprintf("%d", item.Stock),
			expiry,
			"URGENT",
		})
	}

	drawTable(pdf,
		[]string{"Nama Produk", "Qty", "Tgl Kadaluarsa", "Status"},
		[]float64{92, 25, 35, 30},
		rows,
		[3]int{225, 29, 72})

	return output(pdf)
}

// newReportPDF starts a page with the shared analytics header.
func newReportPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(4, 120, 87)
	pdf.CellFormat(0, 9, "LAPORAN ANALITIK APOTEK", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 5, "Generated: "+time.Now().Format("02 January 2006 15:04"), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(16, 185, 129)
	y := pdf.GetY() + 2
	pdf.Line(10, y, 200, y)
	pdf.SetY(y + 4)

	return pdf
}

// drawTable renders a simple grid table with a colored header row.
func drawTable(pdf *gofpdf.Fpdf, headers []string, widths []float64, rows [][]string, headColor [3]int) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(headColor[0], headColor[1], headColor[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(31, 41, 55)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if i == len(row)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func output(pdf *gofpdf.Fpdf) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// formatRupiah renders an amount the way receipts print it: Rp with dot
// thousand separators and no decimals.
func formatRupiah(amount float64) string {
	n := int64(amount)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}
	return sign + "Rp " + sb.String()
}

func millisDateTime(millis int64) string {
	return time.UnixMilli(millis).Format("02/01/2006 15:04")
}
