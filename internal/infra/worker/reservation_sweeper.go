package worker

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
)

// ReservationSweeper clears reservation fields whose 48h window has passed.
// This is housekeeping only: readers already treat an expired reservation
// as absent, the sweeper just keeps the table tidy so list filters and
// reports stay honest.
type ReservationSweeper struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewReservationSweeper(db *sql.DB, tickInterval time.Duration) *ReservationSweeper {
	if tickInterval <= 0 {
		tickInterval = time.Minute
	}
	return &ReservationSweeper{
		db:           db,
		tickInterval: tickInterval,
	}
}

func (w *ReservationSweeper) Start(ctx context.Context) {
	logrus.WithField("interval", w.tickInterval).Info("reservation sweeper started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("reservation sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ReservationSweeper) sweep(ctx context.Context) {
	query := `
		UPDATE leads
		SET
			reserved_by = NULL,
			reserved_at = NULL,
			reservation_expires_at = NULL,
			updated_at = NOW()
		WHERE
			reserved_by IS NOT NULL
			AND reservation_expires_at IS NOT NULL
			AND reservation_expires_at <= NOW()
		RETURNING id, reservation_expires_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("failed to sweep expired reservations")
		return
	}
	defer rows.Close()

	swept := 0
	for rows.Next() {
		var id string
		var expiredAt time.Time

		if err := rows.Scan(&id, &expiredAt); err != nil {
			logrus.WithError(err).Warn("failed to scan swept reservation")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"lead_id":    id,
			"expired_at": expiredAt,
		}).Debug("reservation expired")
		swept++
	}

	if swept > 0 {
		logrus.WithField("count", swept).Info("expired reservations cleared")
	}
}
