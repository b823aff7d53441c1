package alerts

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
)

const emailSubject = "🚨 [Apotek] Alert Stok & Kadaluarsa"

// emailTemplate keeps the shape of the original notification: greeting,
// one table per reason group, a dashboard link, and a restock tip.
var emailTemplate = template.Must(template.New("alert").Funcs(template.FuncMap{
	"millisDate": millisDate,
	"intOrDash":  intOrDash,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:24px;font-family:Arial,sans-serif;background:#ecfdf5;">
  <table style="max-width:650px;margin:0 auto;background:white;border-radius:12px;overflow:hidden;">
    <tr>
      <td style="background:#059669;padding:24px;text-align:center;">
        <div style="font-size:36px;">💊</div>
        <h1 style="margin:0;color:white;font-size:22px;">Peringatan Apotek</h1>
        <p style="margin:6px 0 0 0;color:#d1fae5;font-size:13px;">Notifikasi Stok &amp; Kadaluarsa</p>
      </td>
    </tr>
    <tr>
      <td style="padding:24px;">
        <p style="margin:0 0 16px 0;color:#374151;">Halo Admin 👋</p>
        <p style="margin:0 0 20px 0;color:#6b7280;font-size:14px;">
          Berikut adalah <strong>{{.Total}} item obat</strong> yang memerlukan perhatian segera:
        </p>

        {{if .LowStock}}
        <h3 style="color:#d97706;font-size:14px;">📦 STOK RENDAH ({{len .LowStock}})</h3>
        <table style="width:100%;border-collapse:collapse;background:#fefce8;">
          <thead>
            <tr style="background:#fef3c7;">
              <th style="padding:10px;text-align:left;color:#92400e;font-size:13px;">Nama Obat</th>
              <th style="padding:10px;text-align:center;color:#92400e;font-size:13px;">Stok</th>
              <th style="padding:10px;text-align:center;color:#92400e;font-size:13px;">Min</th>
            </tr>
          </thead>
          <tbody>
            {{range .LowStock}}
            <tr style="border-bottom:1px solid #f3f4f6;">
              <td style="padding:10px;color:#1f2937;">{{.Name}}</td>
              <td style="padding:10px;text-align:center;color:#dc2626;font-weight:bold;">{{intOrDash .Stock}}</td>
              <td style="padding:10px;text-align:center;color:#6b7280;">{{intOrDash .MinStock}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        {{end}}

        {{if .Expiring}}
        <h3 style="color:#dc2626;font-size:14px;margin-top:24px;">⚠️ AKAN KADALUARSA ({{len .Expiring}})</h3>
        <table style="width:100%;border-collapse:collapse;background:#fef2f2;">
          <thead>
            <tr style="background:#fee2e2;">
              <th style="padding:10px;text-align:left;color:#7f1d1d;font-size:13px;">Nama Obat</th>
              <th style="padding:10px;text-align:center;color:#7f1d1d;font-size:13px;">Stok</th>
              <th style="padding:10px;text-align:center;color:#7f1d1d;font-size:13px;">Exp Date</th>
            </tr>
          </thead>
          <tbody>
            {{range .Expiring}}
            <tr style="border-bottom:1px solid #f3f4f6;">
              <td style="padding:10px;color:#1f2937;">{{.Name}}</td>
              <td style="padding:10px;text-align:center;color:#6b7280;">{{intOrDash .Stock}}</td>
              <td style="padding:10px;text-align:center;color:#dc2626;font-weight:bold;">{{millisDate .ExpiredAt}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        {{end}}

        {{if .WebsiteURL}}
        <p style="text-align:center;margin-top:28px;">
          <a href="{{.WebsiteURL}}" style="display:inline-block;background:#059669;color:white;padding:12px 28px;border-radius:8px;text-decoration:none;font-weight:bold;">🔍 Buka Dashboard</a>
        </p>
        {{end}}

        <p style="margin-top:20px;padding:12px;background:#f0fdfa;border-left:4px solid #14b8a6;color:#0f766e;font-size:13px;">
          💡 <strong>Tips:</strong> Segera lakukan restock untuk obat dengan stok rendah dan prioritaskan penjualan obat yang akan kadaluarsa.
        </p>
      </td>
    </tr>
    <tr>
      <td style="background:#f9fafb;padding:16px;text-align:center;border-top:1px solid #e5e7eb;">
        <p style="margin:0;color:#9ca3af;font-size:12px;">Email otomatis dari <strong style="color:#10b981;">Apotek Cloud System</strong></p>
        <p style="margin:6px 0 0 0;color:#d1d5db;font-size:11px;">{{.GeneratedAt}}</p>
      </td>
    </tr>
  </table>
</body>
</html>`))

type emailData struct {
	Total       int
	LowStock    []models.AlertItem
	Expiring    []models.AlertItem
	WebsiteURL  string
	GeneratedAt string
}

// buildEmail renders the subject, HTML body, and plaintext fallback for
// one sweep's worth of items.
func buildEmail(items []models.AlertItem, websiteURL string) (subject, htmlBody, textBody string) {
	data := emailData{
		Total:       len(items),
		WebsiteURL:  websiteURL,
		GeneratedAt: time.Now().Format("02 January 2006 15:04"),
	}
	for _, item := range items {
		if item.Reason == models.AlertReasonLowStock {
			data.LowStock = append(data.LowStock, item)
		} else {
			data.Expiring = append(data.Expiring, item)
		}
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		// The template is static and parsed at init; execution only fails
		// on a writer error, which bytes.Buffer never returns.
		panic(err)
	}

	textBody = fmt.Sprintf(
		"Apotek Alert - %d item perlu perhatian\n\nStok Rendah: %d\nKadaluarsa: %d\n\nBuka dashboard untuk detail.",
		len(items), len(data.LowStock), len(data.Expiring),
	)

	return emailSubject, buf.String(), textBody
}

func millisDate(millis *int64) string {
	if millis == nil {
		return "-"
	}
	return time.UnixMilli(*millis).Format("02/01/2006")
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
