package maintenance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/db"
	"github.com/angelmondragon/fleetdesk-backend/pkg/db/models"
	"github.com/angelmondragon/fleetdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fleetdesk-backend/pkg/errors"
	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

const upcomingLimit = 10

type scheduleRepository interface {
	Create(ctx context.Context, schedule *models.MaintenanceSchedule) error
	FindByID(ctx context.Context, id uint) (*models.MaintenanceSchedule, error)
	Page(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.MaintenanceSchedule, pagination.Meta, error)
	All(ctx context.Context, filter ListFilter) ([]models.MaintenanceSchedule, error)
	Save(ctx context.Context, schedule *models.MaintenanceSchedule) error
	FindVehicle(ctx context.Context, id uint) (*models.Vehicle, error)
}

// Service manages maintenance schedules. Due status is derived on every read.
type Service interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ScheduleDTO, pagination.Meta, error)
	Get(ctx context.Context, id uint) (*ScheduleDTO, error)
	Create(ctx context.Context, input CreateInput) (*ScheduleDTO, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*ScheduleDTO, error)
	Delete(ctx context.Context, id uint) error
	Complete(ctx context.Context, id uint, input CompleteInput) (*ScheduleDTO, error)
	Stats(ctx context.Context) (*StatsDTO, error)
}

type service struct {
	repo scheduleRepository
	now  func() time.Time
}

func NewService(repo scheduleRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ScheduleDTO, pagination.Meta, error) {
	if filter.MaintenanceType != "" && !filter.MaintenanceType.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid maintenance type %q", filter.MaintenanceType)
	}
	if filter.DueStatus != "" && !filter.DueStatus.IsValid() {
		return nil, pagination.Meta{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid due status %q", filter.DueStatus)
	}
	now := s.now()

	if filter.DueStatus == "" {
		rows, meta, err := s.repo.Page(ctx, filter, page)
		if err != nil {
			return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list schedules")
		}
		out := make([]ScheduleDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *FromModel(&rows[i], now))
		}
		return out, meta, nil
	}

	rows, err := s.repo.All(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list schedules")
	}
	matched := make([]ScheduleDTO, 0, len(rows))
	for i := range rows {
		dto := FromModel(&rows[i], now)
		if dto.DueStatus == filter.DueStatus {
			matched = append(matched, *dto)
		}
	}
	n := page.Normalize()
	meta := pagination.NewMeta(n, int64(len(matched)))
	start := min(n.Offset(), len(matched))
	end := min(start+n.Limit, len(matched))
	return matched[start:end], meta, nil
}

func (s *service) Get(ctx context.Context, id uint) (*ScheduleDTO, error) {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(schedule, s.now()), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*ScheduleDTO, error) {
	kind, err := enums.ParseMaintenanceType(strings.TrimSpace(input.MaintenanceType))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid maintenance type")
	}
	if _, err := s.repo.FindVehicle(ctx, input.VehicleID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vehicle")
	}

	schedule := &models.MaintenanceSchedule{
		VehicleID:       input.VehicleID,
		MaintenanceType: kind,
		Description:     trimmed(input.Description),
		IntervalKm:      input.IntervalKm,
		IntervalMonths:  input.IntervalMonths,
		LastServiceDate: input.LastServiceDate,
		LastServiceKm:   input.LastServiceKm,
		NextDueDate:     input.NextDueDate,
		NextDueKm:       input.NextDueKm,
		EstimatedCost:   nullDecimal(input.EstimatedCost),
		Notes:           trimmed(input.Notes),
		IsActive:        true,
	}
	if err := validate(schedule); err != nil {
		return nil, err
	}
	projectMissing(schedule)

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create schedule")
	}
	return s.Get(ctx, schedule.ID)
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*ScheduleDTO, error) {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.MaintenanceType != nil {
		kind, err := enums.ParseMaintenanceType(strings.TrimSpace(*input.MaintenanceType))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid maintenance type")
		}
		schedule.MaintenanceType = kind
	}
	if input.Description != nil {
		schedule.Description = trimmed(input.Description)
	}
	if input.IntervalKm != nil {
		schedule.IntervalKm = input.IntervalKm
	}
	if input.IntervalMonths != nil {
		schedule.IntervalMonths = input.IntervalMonths
	}
	if input.LastServiceDate != nil {
		schedule.LastServiceDate = input.LastServiceDate
	}
	if input.LastServiceKm != nil {
		schedule.LastServiceKm = input.LastServiceKm
	}
	if input.NextDueDate != nil {
		schedule.NextDueDate = input.NextDueDate
	}
	if input.NextDueKm != nil {
		schedule.NextDueKm = input.NextDueKm
	}
	if input.EstimatedCost != nil {
		schedule.EstimatedCost = nullDecimal(input.EstimatedCost)
	}
	if input.Notes != nil {
		schedule.Notes = trimmed(input.Notes)
	}
	if err := validate(schedule); err != nil {
		return nil, err
	}
	projectMissing(schedule)

	if err := s.repo.Save(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update schedule")
	}
	return s.Get(ctx, schedule.ID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	schedule.IsActive = false
	if err := s.repo.Save(ctx, schedule); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete schedule")
	}
	return nil
}

// Complete records a service and rolls the due fields forward from the
// intervals. Concurrent completions overwrite each other; the last write wins.
func (s *service) Complete(ctx context.Context, id uint, input CompleteInput) (*ScheduleDTO, error) {
	schedule, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	serviceDate := s.now().UTC()
	if input.ServiceDate != nil {
		serviceDate = input.ServiceDate.UTC()
	}
	serviceKm := VehicleOdometer(*schedule)
	if input.ServiceKm != nil {
		if *input.ServiceKm < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service km cannot be negative")
		}
		serviceKm = *input.ServiceKm
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		schedule.LastCost = nullDecimal(input.Cost)
	}
	if input.Notes != nil {
		schedule.Notes = trimmed(input.Notes)
	}

	schedule.LastServiceDate = &serviceDate
	schedule.LastServiceKm = &serviceKm
	schedule.NextDueDate, schedule.NextDueKm = NextDue(schedule.LastServiceDate, schedule.LastServiceKm, schedule.IntervalMonths, schedule.IntervalKm)

	if err := s.repo.Save(ctx, schedule); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete schedule")
	}
	return s.Get(ctx, schedule.ID)
}

func (s *service) Stats(ctx context.Context) (*StatsDTO, error) {
	rows, err := s.repo.All(ctx, ListFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load schedules")
	}
	return BuildStats(rows, s.now()), nil
}

// BuildStats folds active schedules into dashboard counts. Upcoming lists
// overdue and due-soon items, most urgent first.
func BuildStats(rows []models.MaintenanceSchedule, now time.Time) *StatsDTO {
	stats := &StatsDTO{
		Total:            len(rows),
		ByType:           map[enums.MaintenanceType]int{},
		Upcoming:         []ScheduleDTO{},
		EstimatedDueCost: decimal.Zero,
	}
	for i := range rows {
		dto := FromModel(&rows[i], now)
		stats.ByType[dto.MaintenanceType]++
		switch dto.DueStatus {
		case enums.DueStatusOverdue:
			stats.Overdue++
		case enums.DueStatusDueSoon:
			stats.DueSoon++
		case enums.DueStatusScheduled:
			stats.Scheduled++
		default:
			stats.Unscheduled++
		}
		if dto.DueStatus == enums.DueStatusOverdue || dto.DueStatus == enums.DueStatusDueSoon {
			stats.Upcoming = append(stats.Upcoming, *dto)
			if dto.EstimatedCost.Valid {
				stats.EstimatedDueCost = stats.EstimatedDueCost.Add(dto.EstimatedCost.Decimal)
			}
		}
	}
	sort.SliceStable(stats.Upcoming, func(i, j int) bool {
		a, b := stats.Upcoming[i], stats.Upcoming[j]
		if a.DueStatus != b.DueStatus {
			return a.DueStatus == enums.DueStatusOverdue
		}
		return dueBefore(a, b)
	})
	if len(stats.Upcoming) > upcomingLimit {
		stats.Upcoming = stats.Upcoming[:upcomingLimit]
	}
	return stats
}

func dueBefore(a, b ScheduleDTO) bool {
	switch {
	case a.NextDueDate != nil && b.NextDueDate != nil:
		return a.NextDueDate.Before(*b.NextDueDate)
	case a.NextDueDate != nil:
		return true
	case b.NextDueDate != nil:
		return false
	}
	if a.KmUntilDue != nil && b.KmUntilDue != nil {
		return *a.KmUntilDue < *b.KmUntilDue
	}
	return a.ID < b.ID
}

func (s *service) load(ctx context.Context, id uint) (*models.MaintenanceSchedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Maintenance schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load schedule")
	}
	if !schedule.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Maintenance schedule not found")
	}
	return schedule, nil
}

func validate(m *models.MaintenanceSchedule) error {
	switch {
	case m.IntervalKm != nil && *m.IntervalKm <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "interval_km must be positive")
	case m.IntervalMonths != nil && *m.IntervalMonths <= 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "interval_months must be positive")
	case m.LastServiceKm != nil && *m.LastServiceKm < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "last_service_km cannot be negative")
	case m.NextDueKm != nil && *m.NextDueKm < 0:
		return pkgerrors.New(pkgerrors.CodeValidation, "next_due_km cannot be negative")
	case m.EstimatedCost.Valid && m.EstimatedCost.Decimal.IsNegative():
		return pkgerrors.New(pkgerrors.CodeValidation, "estimated_cost cannot be negative")
	}
	return nil
}

// projectMissing fills next due values that were not set explicitly.
func projectMissing(m *models.MaintenanceSchedule) {
	nextDate, nextKm := NextDue(m.LastServiceDate, m.LastServiceKm, m.IntervalMonths, m.IntervalKm)
	if m.NextDueDate == nil {
		m.NextDueDate = nextDate
	}
	if m.NextDueKm == nil {
		m.NextDueKm = nextKm
	}
}

func nullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*value)
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
