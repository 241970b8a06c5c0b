package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
)

var tripColumns = []string{
	"id", "trip_date", "departure_at", "origin", "destination",
	"price", "vehicle_id", "sold_count", "created_at", "updated_at",
}

func TestGetTripByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTripRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		tripID := uuid.New().String()
		vehicleID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs(tripID).
			WillReturnRows(sqlmock.NewRows(tripColumns).AddRow(
				tripID, now, now.Add(2*time.Hour), "Colombo", "Kandy",
				1500.00, vehicleID, 12, now, now,
			))

		trip, err := repo.GetByID(tripID)
		require.NoError(t, err)
		assert.Equal(t, tripID, trip.ID)
		assert.Equal(t, "Colombo", trip.Origin)
		assert.Equal(t, 12, trip.SoldCount)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		tripID := uuid.New().String()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs(tripID).
			WillReturnError(sql.ErrNoRows)

		trip, err := repo.GetByID(tripID)
		assert.Nil(t, trip)
		assert.ErrorIs(t, err, models.ErrTripNotFound)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Database Error", func(t *testing.T) {
		tripID := uuid.New().String()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE id`).
			WithArgs(tripID).
			WillReturnError(fmt.Errorf("database error"))

		trip, err := repo.GetByID(tripID)
		assert.Nil(t, trip)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch trip")

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestUpdateSoldCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTripRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		tripID := uuid.New().String()

		mock.ExpectExec(`UPDATE trips SET sold_count`).
			WithArgs(27, tripID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateSoldCount(tripID, 27)
		require.NoError(t, err)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Trip Not Found", func(t *testing.T) {
		tripID := uuid.New().String()

		mock.ExpectExec(`UPDATE trips SET sold_count`).
			WithArgs(3, tripID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSoldCount(tripID, 3)
		assert.ErrorIs(t, err, models.ErrTripNotFound)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestSearchTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTripRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		tripDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE origin`).
			WithArgs("Colombo", "Galle", tripDate).
			WillReturnRows(sqlmock.NewRows(tripColumns).
				AddRow(uuid.New().String(), tripDate, tripDate.Add(6*time.Hour), "Colombo", "Galle",
					1200.00, uuid.New().String(), 4, now, now).
				AddRow(uuid.New().String(), tripDate, tripDate.Add(9*time.Hour), "Colombo", "Galle",
					1200.00, uuid.New().String(), 31, now, now))

		trips, err := repo.Search("Colombo", "Galle", tripDate)
		require.NoError(t, err)
		assert.Len(t, trips, 2)
		assert.Equal(t, 4, trips[0].SoldCount)
		assert.Equal(t, 31, trips[1].SoldCount)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Empty Result", func(t *testing.T) {
		tripDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM trips WHERE origin`).
			WithArgs("Colombo", "Jaffna", tripDate).
			WillReturnRows(sqlmock.NewRows(tripColumns))

		trips, err := repo.Search("Colombo", "Jaffna", tripDate)
		require.NoError(t, err)
		assert.Len(t, trips, 0)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}

func TestListTripIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewTripRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		id1 := uuid.New().String()
		id2 := uuid.New().String()

		mock.ExpectQuery(`SELECT id FROM trips`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id1).AddRow(id2))

		ids, err := repo.ListIDs()
		require.NoError(t, err)
		assert.Equal(t, []string{id1, id2}, ids)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})
}
