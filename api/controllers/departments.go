package controllers

import (
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/responses"
	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/departments"
	"github.com/angelmondragon/fleetdesk-backend/pkg/logger"
)

type createDepartmentRequest struct {
	Code        string  `json:"code" validate:"required,max=10"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

type updateDepartmentRequest struct {
	Code        *string `json:"code" validate:"omitempty,max=10"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func DepartmentsList(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "departments")
			return
		}
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), includeInactive != nil && *includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func DepartmentsGet(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "departments")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dept, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dept)
	}
}

func DepartmentsCreate(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "departments")
			return
		}
		var body createDepartmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dept, err := svc.Create(r.Context(), departments.CreateInput{
			Code:        body.Code,
			Name:        validators.SanitizeString(body.Name, 100),
			Description: validators.OptionalString(body.Description, 0),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dept)
	}
}

func DepartmentsUpdate(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "departments")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateDepartmentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dept, err := svc.Update(r.Context(), id, departments.UpdateInput{
			Code:        body.Code,
			Name:        body.Name,
			Description: body.Description,
			IsActive:    body.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dept)
	}
}

func DepartmentsDelete(svc departments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "departments")
			return
		}
		id, err := validators.PathUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, message{Message: "Department deleted successfully"})
	}
}
