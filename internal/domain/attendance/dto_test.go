package attendance

import (
	"testing"

	"github.com/hrops-dev/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInRequestValidateMarkAsLeave(t *testing.T) {
	t.Parallel()

	// Leave has no required fields; presence fields are simply not consulted.
	req := CheckInRequest{MarkAsLeave: true}
	assert.NoError(t, req.Validate())

	req = CheckInRequest{MarkAsLeave: true, Note: "family matter"}
	assert.NoError(t, req.Validate())
}

func TestCheckInRequestValidatePresence(t *testing.T) {
	t.Parallel()

	req := CheckInRequest{}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "check_in_bucket")
	assert.Contains(t, details, "work_location")

	req = CheckInRequest{Bucket: "morning", WorkLocation: "cafe"}
	require.ErrorAs(t, req.Validate(), &verrs)
	details = verrs.ToMap()
	assert.Contains(t, details, "check_in_bucket")
	assert.Contains(t, details, "work_location")

	req = CheckInRequest{
		Bucket:       CheckInBeforeHalfTen,
		WorkLocation: LocationOffice,
	}
	assert.NoError(t, req.Validate())
}

func TestCheckOutRequestValidate(t *testing.T) {
	t.Parallel()

	req := CheckOutRequest{}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "check_out_bucket")

	req = CheckOutRequest{Bucket: CheckOutAfterSeven}
	assert.NoError(t, req.Validate())
}

func TestValidateCoordinatesRange(t *testing.T) {
	t.Parallel()

	req := CheckInRequest{
		Bucket:       CheckInBeforeHalfTen,
		WorkLocation: LocationOffice,
		Coordinates:  &Coordinates{Latitude: 91, Longitude: -181},
	}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "coordinates")
}
