package users

import (
	"context"
	"testing"

	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc  Service
	repo *Repository
	db   *gorm.DB
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, departments.NewRepository(client.DB()))
	require.NoError(t, err)
	return fixture{svc: svc, repo: repo, db: client.DB()}
}

func (f fixture) createUser(t *testing.T, coynoID, email string, role enums.UserRole) *models.User {
	t.Helper()
	user, err := f.repo.Create(context.Background(), CreateUserDTO{
		CoynoID:   coynoID,
		Email:     email,
		FirstName: "Test",
		LastName:  coynoID,
		UserRole:  role,
	})
	require.NoError(t, err)
	return user
}

func TestCreateDefaultsToDriver(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "CY-100", "driver@example.com", "")
	assert.Equal(t, enums.UserRoleDriver, user.UserRole)
	assert.True(t, user.IsActive)
}

func TestListFiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "CY-1", "one@example.com", enums.UserRoleDriver)
	f.createUser(t, "CY-2", "two@example.com", enums.UserRoleDriver)
	f.createUser(t, "CY-3", "boss@example.com", enums.UserRoleManager)

	drivers, meta, err := f.svc.List(ctx, ListFilter{Role: enums.UserRoleDriver}, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, drivers, 1)
	assert.EqualValues(t, 2, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	found, _, err := f.svc.List(ctx, ListFilter{Search: "BOSS"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CY-3", found[0].CoynoID)

	_, _, err = f.svc.List(ctx, ListFilter{Role: "pilot"}, pagination.Params{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateRejectsTakenEmailAndAssignsDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createUser(t, "CY-1", "one@example.com", enums.UserRoleDriver)
	f.createUser(t, "CY-2", "two@example.com", enums.UserRoleDriver)

	taken := "TWO@example.com"
	_, err := f.svc.Update(ctx, first.ID, UpdateInput{Email: &taken})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	dept := models.Department{Code: "OPS", Name: "Operations", IsActive: true}
	require.NoError(t, f.db.Create(&dept).Error)

	role := "mechanic"
	updated, err := f.svc.Update(ctx, first.ID, UpdateInput{UserRole: &role, DepartmentID: &dept.ID})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleMechanic, updated.UserRole)
	require.NotNil(t, updated.Department)
	assert.Equal(t, "OPS", updated.Department.Code)

	missing := uint(999)
	_, err = f.svc.Update(ctx, first.ID, UpdateInput{DepartmentID: &missing})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestToggleActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.createUser(t, "CY-ADMIN", "admin@example.com", enums.UserRoleAdmin)
	driver := f.createUser(t, "CY-D", "d@example.com", enums.UserRoleDriver)

	_, err := f.svc.ToggleActive(ctx, admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	off, err := f.svc.ToggleActive(ctx, admin.ID, driver.ID)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	stored, err := f.repo.FindByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	on, err := f.svc.ToggleActive(ctx, admin.ID, driver.ID)
	require.NoError(t, err)
	assert.True(t, on.IsActive)

	_, err = f.svc.ToggleActive(ctx, admin.ID, 12345)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListDriversSkipsInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active := f.createUser(t, "CY-1", "one@example.com", enums.UserRoleDriver)
	inactive := f.createUser(t, "CY-2", "two@example.com", enums.UserRoleDriver)
	f.createUser(t, "CY-3", "three@example.com", enums.UserRoleManager)
	require.NoError(t, f.repo.SetActive(ctx, inactive.ID, false))

	drivers, err := f.svc.ListDrivers(ctx)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, active.ID, drivers[0].ID)
}
