package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workforce/internal/platform/config"
)

type seedEmployee struct {
	Name         string
	Position     string
	Email        string
	Phone        string
	HourlyRate   string
	Age          int
	IsStudent    bool
	ContractType string
	BonusType    string
	BonusValue   string
}

var demoEmployees = []seedEmployee{
	{"Jan Kowalski", "Specjalista ds. Sprzedaży", "employee@demo.com", "123-456-789", "45", 28, false, "employment", "percentage", "5"},
	{"Anna Nowak", "Marketing Manager", "anna.nowak@example.com", "987-654-321", "55", 24, true, "mandate", "none", "0"},
	{"Piotr Wiśniewski", "Programista", "piotr.wisniewski@example.com", "555-444-333", "80", 32, false, "employment", "none", "0"},
}

// Seed names the company and, on an empty roster, loads a small demo data set.
// Running it again leaves existing data alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if _, err := pool.Exec(ctx, `
    INSERT INTO company_settings (id, name) VALUES (1, $1)
    ON CONFLICT (id) DO NOTHING
  `, cfg.SeedCompanyName); err != nil {
		return err
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		ids := make([]string, 0, len(demoEmployees))
		for _, emp := range demoEmployees {
			var id string
			if err := tx.QueryRow(ctx, `
        INSERT INTO employees (name, position, email, phone, hourly_rate, age, is_student, contract_type, bonus_type, bonus_value)
        VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10::numeric)
        RETURNING id
      `, emp.Name, emp.Position, emp.Email, emp.Phone, emp.HourlyRate, emp.Age, emp.IsStudent,
				emp.ContractType, emp.BonusType, emp.BonusValue).Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}

		for _, amount := range []string{"1200", "850"} {
			if _, err := tx.Exec(ctx, "INSERT INTO sales (employee_id, amount, sale_date) VALUES ($1,$2::numeric,$3)", ids[0], amount, today); err != nil {
				return err
			}
		}

		yesterday := today.AddDate(0, 0, -1)
		logs := []struct{ employee, start, end string }{
			{ids[0], "09:00", "17:00"},
			{ids[1], "08:30", "16:30"},
		}
		for _, l := range logs {
			if _, err := tx.Exec(ctx, `
        INSERT INTO work_logs (employee_id, work_date, start_time, end_time) VALUES ($1,$2,$3,$4)
      `, l.employee, yesterday, l.start, l.end); err != nil {
				return err
			}
		}

		var requestID string
		if err := tx.QueryRow(ctx, `
      INSERT INTO absence_requests (employee_id, reason, absence_date) VALUES ($1,$2,$3)
      RETURNING id
    `, ids[0], "Wizyta u lekarza", today).Scan(&requestID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO notifications (recipient, type, message, related_id) VALUES ('employer', 'absence_pending', $1, $2)
    `, demoEmployees[0].Name+" złożył wniosek o urlop.", requestID); err != nil {
			return err
		}

		slog.Info("demo data seeded", "employees", len(ids))
		return nil
	})
}
