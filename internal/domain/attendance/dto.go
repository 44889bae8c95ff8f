package attendance

import (
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest is variant (a) mark-as-leave when MarkAsLeave is set, or
// variant (b) a presence check-in. EmployeeID and Date are filled by the
// service from claims and the server clock, never from the body.
type CheckInRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"-"`

	MarkAsLeave  bool          `json:"mark_as_leave,omitempty"`
	Note         string        `json:"note,omitempty"`
	Bucket       CheckInBucket `json:"check_in_bucket,omitempty"`
	WorkLocation WorkLocation  `json:"work_location,omitempty"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	// Mark-as-leave carries no required fields; the note is optional.
	if r.MarkAsLeave {
		return nil
	}

	var errs validator.ValidationErrors

	if validator.IsEmpty(string(r.Bucket)) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_bucket",
			Message: "check_in_bucket is required",
		})
	} else if !r.Bucket.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_bucket",
			Message: "check_in_bucket must be one of: before_0930, 0930_1100, after_1100",
		})
	}

	if validator.IsEmpty(string(r.WorkLocation)) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_location",
			Message: "work_location is required",
		})
	} else if !r.WorkLocation.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "work_location",
			Message: "work_location must be one of: office, home_with_permission, home_without_permission",
		})
	}

	validateCoordinates(r.Coordinates, "coordinates", &errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"-"`

	Bucket      CheckOutBucket `json:"check_out_bucket"`
	Note        *string        `json:"note,omitempty"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(string(r.Bucket)) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_bucket",
			Message: "check_out_bucket is required",
		})
	} else if !r.Bucket.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_bucket",
			Message: "check_out_bucket must be one of: before_1700, 1700_1900, after_1900",
		})
	}

	validateCoordinates(r.Coordinates, "coordinates", &errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckInPayload mirrors CheckInUpdate on the wire.
type CheckInPayload struct {
	Bucket       CheckInBucket `json:"bucket"`
	WorkLocation WorkLocation  `json:"work_location"`
	Coordinates  *Coordinates  `json:"coordinates,omitempty"`
}

// CheckOutPayload mirrors CheckOutUpdate on the wire. An empty payload
// clears the check-out half of the record.
type CheckOutPayload struct {
	Bucket      CheckOutBucket `json:"bucket"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

// AdminEditRequest is the unconstrained upsert for privileged callers.
// Absent fields leave the stored record untouched.
type AdminEditRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"-"`

	Status   *Status          `json:"status,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
	CheckIn  *CheckInPayload  `json:"check_in,omitempty"`
	CheckOut *CheckOutPayload `json:"check_out,omitempty"`
}

func (r *AdminEditRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Status != nil && !r.Status.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: unset, present, absent, leave, holiday",
		})
	}

	if r.CheckIn != nil {
		if r.CheckIn.Bucket != "" && !r.CheckIn.Bucket.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in.bucket",
				Message: "bucket must be one of: before_0930, 0930_1100, after_1100",
			})
		}
		if r.CheckIn.WorkLocation != "" && !r.CheckIn.WorkLocation.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in.work_location",
				Message: "work_location must be one of: office, home_with_permission, home_without_permission",
			})
		}
		validateCoordinates(r.CheckIn.Coordinates, "check_in.coordinates", &errs)
	}

	if r.CheckOut != nil {
		if r.CheckOut.Bucket != "" && !r.CheckOut.Bucket.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out.bucket",
				Message: "bucket must be one of: before_1700, 1700_1900, after_1900",
			})
		}
		validateCoordinates(r.CheckOut.Coordinates, "check_out.coordinates", &errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCoordinates(c *Coordinates, field string, errs *validator.ValidationErrors) {
	if c == nil {
		return
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: "latitude must be between -90 and 90",
		})
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: "longitude must be between -180 and 180",
		})
	}
}

type RecordResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`

	Status      Status `json:"status"`
	StatusLabel string `json:"status_label"`
	Notes       string `json:"notes,omitempty"`

	CheckInBucket      *CheckInBucket  `json:"check_in_bucket,omitempty"`
	CheckInBucketLabel *string         `json:"check_in_bucket_label,omitempty"`
	WorkLocation       *WorkLocation   `json:"work_location,omitempty"`
	WorkLocationLabel  *string         `json:"work_location_label,omitempty"`
	CheckInCoords      *Coordinates    `json:"check_in_coordinates,omitempty"`
	CheckOutBucket     *CheckOutBucket `json:"check_out_bucket,omitempty"`
	CheckOutLabel      *string         `json:"check_out_bucket_label,omitempty"`
	CheckOutCoords     *Coordinates    `json:"check_out_coordinates,omitempty"`

	CanCheckOut bool `json:"can_check_out"`
}

type PromptStatusResponse struct {
	Date        string          `json:"date"`
	State       PromptState     `json:"state"`
	CanCheckOut bool            `json:"can_check_out"`
	Record      *RecordResponse `json:"record,omitempty"`
}
