package alerts

import (
	"context"
	"database/sql"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/email"
	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/google/uuid"
)

// Service runs the low-stock / expiry sweep. It is stateless between
// runs: nothing tracks which items were already notified, so a scheduler
// that fires hourly re-alerts on the same items until stock is topped up
// or the expired batch is pulled.
type Service struct {
	DB     *sql.DB
	Mailer email.Sender

	MinStock         int
	DaysBeforeExpire int

	EmailFrom  string
	EmailTo    string
	WebsiteURL string
}

// Result reports one sweep outcome to the caller.
type Result struct {
	Sent  bool               `json:"sent"`
	Items []models.AlertItem `json:"items"`
}

// Run executes one sweep: collect eligible items, mail the summary, and
// append one alert record. An empty result set sends nothing and writes
// nothing. Mail failure propagates and no record is appended; delivery is
// at most once per invocation with no retry.
func (s *Service) Run(ctx context.Context) (Result, error) {
	now := time.Now().UnixMilli()
	expireBefore := now + int64(s.DaysBeforeExpire)*24*60*60*1000

	items, err := s.collectItems(ctx, now, expireBefore)
	if err != nil {
		return Result{}, err
	}

	if len(items) == 0 {
		return Result{Sent: false, Items: []models.AlertItem{}}, nil
	}

	subject, htmlBody, textBody := buildEmail(items, s.WebsiteURL)
	if err := s.Mailer.Send(s.EmailFrom, s.EmailTo, subject, htmlBody, textBody); err != nil {
		return Result{}, err
	}

	if err := s.recordAlert(ctx, items, now); err != nil {
		return Result{}, err
	}

	return Result{Sent: true, Items: items}, nil
}

// collectItems runs the two eligibility queries. The expiry query has no
// lower bound on purpose: already-expired stock still needs attention and
// keeps appearing until it is removed. An item matching both conditions
// is listed twice, once per reason.
func (s *Service) collectItems(ctx context.Context, now, expireBefore int64) ([]models.AlertItem, error) {
	var items []models.AlertItem

	// (a) stock at or below the minimum threshold
	lowStockQuery := `
		SELECT id, name, stock, min_stock, expired_at
		FROM medicines
		WHERE stock <= ?`
	if err := s.appendItems(ctx, &items, lowStockQuery, models.AlertReasonLowStock, s.MinStock); err != nil {
		return nil, err
	}

	// (b) expiry inside the lookahead window
	expiringQuery := `
		SELECT id, name, stock, min_stock, expired_at
		FROM medicines
		WHERE expired_at IS NOT NULL AND expired_at <= ?`
	if err := s.appendItems(ctx, &items, expiringQuery, models.AlertReasonExpiredSoon, expireBefore); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Service) appendItems(ctx context.Context, items *[]models.AlertItem, query, reason string, arg interface{}) error {
	rows, err := s.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.AlertItem
		var stock, minStock int
		var expiredAt sql.NullInt64

		if err := rows.Scan(&item.ID, &item.Name, &stock, &minStock, &expiredAt); err != nil {
			return err
		}

		item.Stock = &stock
		item.MinStock = &minStock
		if expiredAt.Valid {
			v := expiredAt.Int64
			item.ExpiredAt = &v
		}
		item.Reason = reason

		*items = append(*items, item)
	}
	return rows.Err()
}

// recordAlert appends the alert document and its item snapshots.
func (s *Service) recordAlert(ctx context.Context, items []models.AlertItem, now int64) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	alertID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO alerts (id, status, type, created_at) VALUES (?, ?, ?, ?)`,
		alertID, "sent", "email", now)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO alert_items (id, alert_id, medicine_id, name, stock, min_stock, expired_at, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, item := range items {
		var expiredAt interface{}
		if item.ExpiredAt != nil {
			expiredAt = *item.ExpiredAt
		}
		_, err = tx.ExecContext(ctx, itemQuery,
			uuid.NewString(), alertID, item.ID, item.Name, item.Stock, item.MinStock, expiredAt, item.Reason)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
