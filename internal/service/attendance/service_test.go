package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/attendance"
	"github.com/hrops-dev/attendance-backend-go/internal/domain/employee"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/validator"
	"github.com/hrops-dev/attendance-backend-go/internal/repository/ledger"
	"github.com/hrops-dev/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-03-10"

type fakeDirectory map[string]string

func (d fakeDirectory) ResolveName(ctx context.Context, employeeID string) (string, error) {
	if name, ok := d[employeeID]; ok {
		return name, nil
	}
	return "", employee.ErrEmployeeNotFound
}

type fakeLocator struct {
	coords attendance.Coordinates
	err    error
}

func (f *fakeLocator) Acquire(ctx context.Context) (attendance.Coordinates, error) {
	if f.err != nil {
		return attendance.Coordinates{}, f.err
	}
	return f.coords, nil
}

type toast struct {
	employeeID string
	level      string
	message    string
}

type fakeNotifier struct {
	toasts []toast
}

func (f *fakeNotifier) Notify(employeeID, level, message string) {
	f.toasts = append(f.toasts, toast{employeeID, level, message})
}

func (f *fakeNotifier) lastLevel() string {
	if len(f.toasts) == 0 {
		return ""
	}
	return f.toasts[len(f.toasts)-1].level
}

type testEnv struct {
	svc      *AttendanceServiceImpl
	ledger   *ledger.Ledger
	locator  *fakeLocator
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	ld := ledger.New(memory.NewBlobStore())
	loc := &fakeLocator{coords: attendance.Coordinates{Latitude: -7.95, Longitude: 112.61}}
	n := &fakeNotifier{}
	dir := fakeDirectory{"emp-1": "Ayu Lestari", "emp-2": "Bima Putra"}

	svc := NewAttendanceService(ld, dir, loc, n, NewPromptGate(), time.Second).(*AttendanceServiceImpl)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	return &testEnv{svc: svc, ledger: ld, locator: loc, notifier: n}
}

func authCtx(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCheckInRecordsPresence(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInHalfTenEleven,
		WorkLocation: attendance.LocationOffice,
		Coordinates:  &attendance.Coordinates{Latitude: -7.9, Longitude: 112.6},
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Ayu Lestari", resp.EmployeeName)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.CheckInBucket)
	assert.Equal(t, attendance.CheckInHalfTenEleven, *resp.CheckInBucket)
	require.NotNil(t, resp.CheckInBucketLabel)
	assert.Equal(t, "9:30 AM - 11:00 AM", *resp.CheckInBucketLabel)
	require.NotNil(t, resp.CheckInCoords)
	assert.InDelta(t, -7.9, resp.CheckInCoords.Latitude, 1e-9)
	assert.Nil(t, resp.CheckOutBucket)
	assert.True(t, resp.CanCheckOut)

	assert.Equal(t, attendance.NotifyInfo, env.notifier.lastLevel())
}

func TestCheckInMarkAsLeave(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{MarkAsLeave: true})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLeave, resp.Status)
	assert.Equal(t, "Marked as Leave", resp.Notes)
	assert.Nil(t, resp.CheckInBucket)
	assert.False(t, resp.CanCheckOut)

	rec, err := env.ledger.Get(ctx, "emp-1", testDate)
	require.NoError(t, err)
	assert.Nil(t, rec.Presence)
}

func TestCheckInLeaveOverwritesPresence(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationHomePermitted,
	})
	require.NoError(t, err)

	// Marking the same day as leave wipes the morning's presence data.
	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		MarkAsLeave: true,
		Note:        "family matter",
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, resp.Status)
	assert.Equal(t, "family matter", resp.Notes)

	rec, err := env.ledger.Get(ctx, "emp-1", testDate)
	require.NoError(t, err)
	assert.Nil(t, rec.Presence)
}

func TestCheckInValidatesRequiredFields(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "check_in_bucket")
	assert.Contains(t, details, "work_location")
}

func TestCheckInFallsBackToLocator(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)

	rec, err := env.ledger.Get(ctx, "emp-1", testDate)
	require.NoError(t, err)
	require.NotNil(t, rec.Presence.CheckInCoords)
	assert.InDelta(t, env.locator.coords.Latitude, rec.Presence.CheckInCoords.Latitude, 1e-9)
}

func TestCheckInToleratesLocatorFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	env.locator.err = attendance.ErrLocationUnavailable
	ctx := authCtx(t, "emp-1")

	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)

	// Saved without coordinates, employee warned.
	assert.Nil(t, resp.CheckInCoords)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotEmpty(t, env.notifier.toasts)
	assert.Equal(t, attendance.NotifyWarning, env.notifier.toasts[0].level)
}

func TestCheckOutPairsWithCheckIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Bucket: attendance.CheckOutFiveSeven,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutBucket)
	assert.Equal(t, attendance.CheckOutFiveSeven, *resp.CheckOutBucket)
	assert.False(t, resp.CanCheckOut)
}

func TestCheckOutWithoutCheckInRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Bucket: attendance.CheckOutBeforeFive,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Equal(t, attendance.NotifyWarning, env.notifier.lastLevel())

	// Ledger untouched.
	_, err = env.ledger.Get(ctx, "emp-1", testDate)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestCheckOutOnLeaveDayRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{MarkAsLeave: true})
	require.NoError(t, err)

	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Bucket: attendance.CheckOutBeforeFive,
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	rec, err := env.ledger.Get(ctx, "emp-1", testDate)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, rec.Status)
}

func TestReCheckInResetsCheckOut(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)
	_, err = env.svc.CheckOut(ctx, attendance.CheckOutRequest{
		Bucket: attendance.CheckOutBeforeFive,
	})
	require.NoError(t, err)

	resp, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInHalfTenEleven,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.CheckOutBucket)
	assert.True(t, resp.CanCheckOut)
}

func TestPromptLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	// No record yet: the prompt is due.
	status, err := env.svc.PromptStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.PromptNeeded, status.State)
	assert.Equal(t, testDate, status.Date)
	assert.Nil(t, status.Record)

	// Dismissing silences it for this session only.
	require.NoError(t, env.svc.DismissPrompt(ctx, ""))
	status, err = env.svc.PromptStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.PromptDismissed, status.State)

	// A recorded check-in satisfies the gate, beating the dismissal.
	_, err = env.svc.CheckIn(ctx, attendance.CheckInRequest{
		Bucket:       attendance.CheckInBeforeHalfTen,
		WorkLocation: attendance.LocationOffice,
	})
	require.NoError(t, err)

	status, err = env.svc.PromptStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.PromptSatisfied, status.State)
	require.NotNil(t, status.Record)
	assert.True(t, status.CanCheckOut)
}

func TestPromptSatisfiedByAdminEdit(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	status := attendance.StatusPresent
	_, err := env.svc.AdminEdit(ctx, attendance.AdminEditRequest{
		EmployeeID: "emp-1",
		Date:       testDate,
		Status:     &status,
		CheckIn: &attendance.CheckInPayload{
			Bucket:       attendance.CheckInAfterEleven,
			WorkLocation: attendance.LocationHomePermitted,
		},
	})
	require.NoError(t, err)

	prompt, err := env.svc.PromptStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.PromptSatisfied, prompt.State)
}

func TestAdminEditValidatesDate(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-1")

	_, err := env.svc.AdminEdit(ctx, attendance.AdminEditRequest{
		EmployeeID: "emp-1",
		Date:       "10-03-2025",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
}

func TestGetRecordUnknownEmployeeNameFallsBack(t *testing.T) {
	t.Parallel()
	env := newTestEnv()
	ctx := authCtx(t, "emp-9")

	_, err := env.svc.CheckIn(ctx, attendance.CheckInRequest{MarkAsLeave: true})
	require.NoError(t, err)

	resp, err := env.svc.GetRecord(ctx, "emp-9", testDate)
	require.NoError(t, err)
	assert.Equal(t, "emp-9", resp.EmployeeName)
}

func TestCheckInRequiresClaims(t *testing.T) {
	t.Parallel()
	env := newTestEnv()

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{MarkAsLeave: true})
	require.Error(t, err)
	assert.False(t, errors.Is(err, attendance.ErrNotCheckedIn))
}
