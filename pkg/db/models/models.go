package models

// All lists every persisted model, for AutoMigrate in tests and local sqlite runs.
func All() []any {
	return []any{
		&Department{},
		&User{},
		&Vehicle{},
		&Trip{},
		&MaintenanceSchedule{},
		&VehicleInspection{},
		&VehicleStatusLog{},
		&UserSession{},
	}
}
