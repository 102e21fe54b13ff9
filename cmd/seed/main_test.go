package main

import (
	"context"
	"testing"

	"github.com/angelmondragon/fleetdesk-backend/pkg/config"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/dbtest"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	"github.com/angelmondragon/fleetdesk-backend/pkg/security"
)

func TestRunSeedsDepartmentsAndAdmin(t *testing.T) {
	client := dbtest.Open(t)
	admin := adminSeed{CoynoID: "ADMIN001", Email: "admin@fleet.local", Password: "bootstrap-pass"}
	pw := config.PasswordConfig{BcryptCost: 4}

	for i := 0; i < 2; i++ {
		if err := run(context.Background(), client, pw, admin); err != nil {
			t.Fatalf("run #%d: %v", i+1, err)
		}
	}

	var depts int64
	if err := client.DB().Model(&models.Department{}).Count(&depts).Error; err != nil {
		t.Fatalf("count departments: %v", err)
	}
	if depts != int64(len(defaultDepartments)) {
		t.Fatalf("expected %d departments, got %d", len(defaultDepartments), depts)
	}

	var users []models.User
	if err := client.DB().Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected one admin, got %d", len(users))
	}
	if users[0].UserRole != enums.UserRoleAdmin || users[0].DepartmentID == nil {
		t.Fatalf("unexpected admin %+v", users[0])
	}
	if users[0].PasswordHash == nil {
		t.Fatal("admin has no password hash")
	}
	ok, err := security.VerifyPassword(admin.Password, *users[0].PasswordHash)
	if err != nil || !ok {
		t.Fatalf("admin password does not verify: %v", err)
	}
}

func TestRunRequiresPassword(t *testing.T) {
	client := dbtest.Open(t)
	if err := run(context.Background(), client, config.PasswordConfig{BcryptCost: 4}, adminSeed{CoynoID: "A"}); err == nil {
		t.Fatal("expected missing password to fail")
	}
}
