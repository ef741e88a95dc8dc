package repository

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	"go-booking-engine/config"
	"go-booking-engine/internal/database"
	"go-booking-engine/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := testDB.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping test database: %v", err)
	}

	log.Println("Test database connected successfully")
	log.Println("Running repository tests...")

	code := m.Run()
	testDB.Close()
	log.Println("Test database closed")

	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	_, err := testDB.Exec(ctx,
		"TRUNCATE booking_seats, bookings, promo_codes, screen_seats, showtimes, venues RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {}
}

func getTestDB() *pgxpool.Pool {
	if testDB == nil {
		panic("testDB is not initialized. Make sure TestMain has run.")
	}
	return testDB
}

func createTestVenue(t *testing.T, name string, ownerID int) int {
	t.Helper()

	var id int
	err := testDB.QueryRow(context.Background(),
		`INSERT INTO venues (name, owner_id) VALUES ($1, $2) RETURNING id`,
		name, ownerID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test venue: %v", err)
	}

	return id
}

func createTestShowtime(t *testing.T, venueID int, tiers map[string]float64, active bool) int {
	t.Helper()

	tiersJSON, err := json.Marshal(tiers)
	if err != nil {
		t.Fatalf("Failed to marshal price tiers: %v", err)
	}

	start := time.Now().Add(24 * time.Hour).UTC()

	var id int
	err = testDB.QueryRow(context.Background(), `
		INSERT INTO showtimes (
			subject_kind, subject_id, title, venue_id, screen_id, screen_name,
			start_time, end_time, total_seats, price_tiers, is_active
		)
		VALUES ('movie', 1, 'Test Screening', $1, 1, 'Screen 1', $2, $3, 100, $4, $5)
		RETURNING id
	`, venueID, start, start.Add(2*time.Hour), tiersJSON, active).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test showtime: %v", err)
	}

	return id
}

func createTestBooking(t *testing.T, refID string, userID, showtimeID int, seats []string, status model.BookingStatus) int {
	t.Helper()
	ctx := context.Background()

	var id int
	err := testDB.QueryRow(ctx, `
		INSERT INTO bookings (
			ref_id, user_id, showtime_id, seats,
			original_amount, discount_amount, gst_amount, total_amount,
			status, booked_at, provider_order_id
		)
		VALUES ($1, $2, $3, $4, 600, 0, 108, 708, $5, NOW(), 'order_test')
		RETURNING id
	`, refID, userID, showtimeID, seats, status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test booking: %v", err)
	}

	for _, seat := range seats {
		_, err := testDB.Exec(ctx,
			`INSERT INTO booking_seats (booking_id, showtime_id, seat_id) VALUES ($1, $2, $3)`,
			id, showtimeID, seat)
		if err != nil {
			t.Fatalf("Failed to create test booking seat: %v", err)
		}
	}

	return id
}

func createTestPromo(t *testing.T, code string, uses int) int {
	t.Helper()

	var id int
	err := testDB.QueryRow(context.Background(), `
		INSERT INTO promo_codes (code, is_active, discount_type, discount_value, uses)
		VALUES ($1, TRUE, 'percentage', 10, $2)
		RETURNING id
	`, code, uses).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test promo: %v", err)
	}

	return id
}
