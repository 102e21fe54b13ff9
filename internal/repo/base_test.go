package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDB_BindsContext(t *testing.T) {
	client := dbtest.Open(t)
	base := NewBase(client.DB())

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	withCtx := base.DB(ctx)
	require.NotNil(t, withCtx)
	assert.Equal(t, ctx, withCtx.Statement.Context)
	assert.Equal(t, client.DB(), base.DB(nil))
}

func TestPageCountsBeforeOrdering(t *testing.T) {
	client := dbtest.Open(t)
	db := client.DB()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Department{Code: fmt.Sprintf("D%d", i), Name: fmt.Sprintf("Dept %d", i), IsActive: true}).Error)
	}

	var rows []models.Department
	meta, err := Page(db.Model(&models.Department{}), pagination.Params{Page: 2, Limit: 2}, "code DESC", &rows)
	require.NoError(t, err)
	assert.EqualValues(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	require.Len(t, rows, 2)
	assert.Equal(t, "D2", rows[0].Code)
	assert.Equal(t, "D1", rows[1].Code)
}

func TestWithinAndSearch(t *testing.T) {
	client := dbtest.Open(t)
	db := client.DB()
	require.NoError(t, db.Create(&models.Vehicle{NumberPlate: "KAA111", Make: "Toyota", Model: "Hilux", Year: 2020, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Vehicle{NumberPlate: "KBB222", Make: "Isuzu", Model: "D-Max", Year: 2021, IsActive: true}).Error)

	var found []models.Vehicle
	require.NoError(t, Search(db.Model(&models.Vehicle{}), "toy", "number_plate", "make").Find(&found).Error)
	require.Len(t, found, 1)
	assert.Equal(t, "KAA111", found[0].NumberPlate)

	future := time.Now().Add(time.Hour)
	var none []models.Vehicle
	require.NoError(t, Within(db.Model(&models.Vehicle{}), "created_at", &future, nil).Find(&none).Error)
	assert.Empty(t, none)
}
