package departments

import (
	"context"
	"testing"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreateNormalizesCodeAndRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dept, err := svc.Create(ctx, CreateInput{Code: " ops ", Name: "Operations"})
	require.NoError(t, err)
	assert.Equal(t, "OPS", dept.Code)
	assert.True(t, dept.IsActive)

	_, err = svc.Create(ctx, CreateInput{Code: "OPS", Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreateValidatesCodeLength(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Code: "ELEVENCHARS", Name: "Too long"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateInput{Code: "OK", Name: "  "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDeleteIsSoftAndHiddenFromDefaultList(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	dept, err := svc.Create(ctx, CreateInput{Code: "LOG", Name: "Logistics"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, dept.ID))

	stored, err := repo.FindByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetIncludesMemberCounts(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	dept, err := svc.Create(ctx, CreateInput{Code: "FLT", Name: "Fleet"})
	require.NoError(t, err)

	db := repo.db
	require.NoError(t, db.Create(&models.Vehicle{NumberPlate: "KAA001", Make: "Toyota", Model: "Hilux", Year: 2020, DepartmentID: &dept.ID, IsActive: true}).Error)
	require.NoError(t, db.Create(&models.User{CoynoID: "CY-1", Email: "a@example.com", FirstName: "A", LastName: "B", DepartmentID: &dept.ID, IsActive: true}).Error)

	got, err := svc.Get(ctx, dept.ID)
	require.NoError(t, err)
	require.NotNil(t, got.VehicleCount)
	require.NotNil(t, got.UserCount)
	assert.EqualValues(t, 1, *got.VehicleCount)
	assert.EqualValues(t, 1, *got.UserCount)
}

func TestGetMissingDepartmentIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateChangesCodeWhenFree(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{Code: "AAA", Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Code: "BBB", Name: "B"})
	require.NoError(t, err)

	taken := "bbb"
	_, err = svc.Update(ctx, a.ID, UpdateInput{Code: &taken})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	free := "ccc"
	name := "Renamed"
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Code: &free, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "CCC", updated.Code)
	assert.Equal(t, "Renamed", updated.Name)
}
