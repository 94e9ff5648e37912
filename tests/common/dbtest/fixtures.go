//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"car-rental-platform/internal/pkg/pgconv"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DefaultAgencyID is seeded by SeedReferenceData.
var DefaultAgencyID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")

func CreateTestAgency(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	agencyID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO agencies (id, name) VALUES ($1, $2)", agencyID, name)
	require.NoError(t, err)

	return agencyID
}

type VehicleFixture struct {
	AgencyID    uuid.UUID
	Make        string
	Model       string
	DailyRate   string
	WeeklyRate  string
	MonthlyRate string
	IsAvailable bool
}

// DefaultVehicle rents at 50/day, 300/week, 1200/month.
func DefaultVehicle(agencyID uuid.UUID) VehicleFixture {
	return VehicleFixture{
		AgencyID:    agencyID,
		Make:        "Toyota",
		Model:       "Corolla",
		DailyRate:   "50.00",
		WeeklyRate:  "300.00",
		MonthlyRate: "1200.00",
		IsAvailable: true,
	}
}

func CreateTestVehicle(t *testing.T, db DBLike, v VehicleFixture) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO vehicles (id, agency_id, make, model, daily_rate, weekly_rate, monthly_rate, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		vehicleID, v.AgencyID, v.Make, v.Model,
		numeric(v.DailyRate), numeric(v.WeeklyRate), numeric(v.MonthlyRate), v.IsAvailable)
	require.NoError(t, err)

	return vehicleID
}

type DiscountFixture struct {
	AgencyID      uuid.UUID
	Code          string
	Kind          string
	Amount        string
	MinRentalDays *int
	MaxRentalDays *int
	ValidFrom     civil.Date
	ValidTo       civil.Date
	IsActive      bool
}

func CreateTestDiscount(t *testing.T, db DBLike, d DiscountFixture) uuid.UUID {
	t.Helper()

	discountID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO discounts (id, agency_id, code, kind, amount, min_rental_days, max_rental_days, valid_from, valid_to, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		discountID, d.AgencyID, d.Code, d.Kind, numeric(d.Amount),
		pgconv.IntPtrToPgtype(d.MinRentalDays), pgconv.IntPtrToPgtype(d.MaxRentalDays),
		pgconv.DateToPgtype(d.ValidFrom), pgconv.DateToPgtype(d.ValidTo), d.IsActive)
	require.NoError(t, err)

	return discountID
}

// CreateTestReservation inserts a reservation priced at 50/day with no discount.
func CreateTestReservation(t *testing.T, db DBLike, agencyID, vehicleID, userID uuid.UUID, start, end civil.Date, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	days := end.DaysSince(start) + 1
	price := pgconv.NumericFromDecimal(decimal.NewFromInt(int64(days * 50)))
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (
			id, agency_id, vehicle_id, user_id, customer_name, customer_email, customer_phone,
			start_date, end_date, total_days, base_price, discount_amount, total_price, status
		) VALUES ($1, $2, $3, $4, 'Fixture Customer', 'fixture@example.com', '+1-555-0199',
			$5, $6, $7, $8, 0, $8, $9)`,
		reservationID, agencyID, vehicleID, userID,
		pgconv.DateToPgtype(start), pgconv.DateToPgtype(end), int32(days), price, status)
	require.NoError(t, err)

	return reservationID
}

func numeric(s string) pgtype.Numeric {
	return pgconv.NumericFromDecimal(decimal.RequireFromString(s))
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO agencies (id, name) VALUES ($1, 'Default Agency')
		ON CONFLICT (id) DO NOTHING;
	`, DefaultAgencyID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
