package analytics

import (
	"net/http"

	"github.com/angelmondragon/fleetdesk-backend/api/validators"
	"github.com/angelmondragon/fleetdesk-backend/internal/analytics"
)

// ParseQuery reads the window and scope parameters shared by analytics and
// report endpoints. Window validation happens in the service.
func ParseQuery(r *http.Request) (analytics.Query, error) {
	q := r.URL.Query()
	out := analytics.Query{
		Filter:    validators.SanitizeString(q.Get("filter"), 20),
		StartDate: validators.SanitizeString(q.Get("start_date"), 40),
		EndDate:   validators.SanitizeString(q.Get("end_date"), 40),
		Scope: analytics.Scope{
			CompanyID: validators.SanitizeString(q.Get("company_id"), 50),
		},
	}
	var err error
	if out.Scope.DepartmentID, err = validators.ParseQueryUint(r, "department_id"); err != nil {
		return analytics.Query{}, err
	}
	if out.Scope.UserID, err = validators.ParseQueryUint(r, "user_id"); err != nil {
		return analytics.Query{}, err
	}
	return out, nil
}
