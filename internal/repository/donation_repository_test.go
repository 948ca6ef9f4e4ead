package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/dafoundation/disaster-relief-api/internal/models"
)

func newMockRepo(t *testing.T) (DonationRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewDonationRepository(gdb), mock
}

// TestUpdateStatusFrom_Success verifies the previous status rides in the
// WHERE clause as the concurrency token.
func TestUpdateStatusFrom_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE `donations` SET .+ WHERE id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusFrom(1, models.DonationStatusPending, map[string]interface{}{
		"status": models.DonationStatusApproved,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestUpdateStatusFrom_GuardMiss verifies a stale token surfaces as
// ErrNoRowsUpdated instead of silently writing nothing.
func TestUpdateStatusFrom_GuardMiss(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE `donations` SET .+ WHERE id = \\? AND status = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatusFrom(1, models.DonationStatusPending, map[string]interface{}{
		"status": models.DonationStatusApproved,
	})
	assert.ErrorIs(t, err, ErrNoRowsUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestInventory_Query verifies cancelled donations are excluded from the
// aggregate and rows scan into the per-status quantities.
func TestInventory_Query(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"resource_type", "total_quantity", "pending_quantity", "approved_quantity", "distributed_quantity",
	}).
		AddRow("Blankets", 3, 3, 0, 0).
		AddRow("Water", 20, 10, 4, 6)

	mock.ExpectQuery("SELECT resource_type, .+ FROM `donations` WHERE status <> \\? GROUP BY `resource_type`").
		WithArgs("Pending", "Approved", "Distributed", "Cancelled").
		WillReturnRows(rows)

	items, err := repo.Inventory()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Water", items[1].ResourceType)
	assert.Equal(t, 20, items[1].TotalQuantity)
	assert.Equal(t, 10, items[1].PendingQuantity)
	assert.Equal(t, 4, items[1].ApprovedQuantity)
	assert.Equal(t, 6, items[1].DistributedQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
