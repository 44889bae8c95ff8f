package attendance

// Status is the per-day attendance status. StatusUnset marks a record that
// exists but has not been classified yet.
type Status string

const (
	StatusUnset   Status = "unset"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnset, StatusPresent, StatusAbsent, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	case StatusLeave:
		return "Leave"
	case StatusHoliday:
		return "Holiday"
	default:
		return "No Data"
	}
}

// CheckInBucket is one of three ordered morning time buckets.
type CheckInBucket string

const (
	CheckInBeforeHalfTen CheckInBucket = "before_0930"
	CheckInHalfTenEleven CheckInBucket = "0930_1100"
	CheckInAfterEleven   CheckInBucket = "after_1100"
)

func (b CheckInBucket) Valid() bool {
	switch b {
	case CheckInBeforeHalfTen, CheckInHalfTenEleven, CheckInAfterEleven:
		return true
	}
	return false
}

func (b CheckInBucket) Label() string {
	switch b {
	case CheckInBeforeHalfTen:
		return "Before 9:30 AM"
	case CheckInHalfTenEleven:
		return "9:30 AM - 11:00 AM"
	case CheckInAfterEleven:
		return "After 11:00 AM"
	default:
		return ""
	}
}

// CheckOutBucket is one of three ordered evening time buckets.
type CheckOutBucket string

const (
	CheckOutBeforeFive CheckOutBucket = "before_1700"
	CheckOutFiveSeven  CheckOutBucket = "1700_1900"
	CheckOutAfterSeven CheckOutBucket = "after_1900"
)

func (b CheckOutBucket) Valid() bool {
	switch b {
	case CheckOutBeforeFive, CheckOutFiveSeven, CheckOutAfterSeven:
		return true
	}
	return false
}

func (b CheckOutBucket) Label() string {
	switch b {
	case CheckOutBeforeFive:
		return "Before 5:00 PM"
	case CheckOutFiveSeven:
		return "5:00 PM - 7:00 PM"
	case CheckOutAfterSeven:
		return "After 7:00 PM"
	default:
		return ""
	}
}

// WorkLocation records where a present employee worked from.
type WorkLocation string

const (
	LocationOffice          WorkLocation = "office"
	LocationHomePermitted   WorkLocation = "home_with_permission"
	LocationHomeUnpermitted WorkLocation = "home_without_permission"
)

func (l WorkLocation) Valid() bool {
	switch l {
	case LocationOffice, LocationHomePermitted, LocationHomeUnpermitted:
		return true
	}
	return false
}

func (l WorkLocation) Label() string {
	switch l {
	case LocationOffice:
		return "Office"
	case LocationHomePermitted:
		return "Home (with permission)"
	case LocationHomeUnpermitted:
		return "Home (without permission)"
	default:
		return ""
	}
}

// Coordinates is a device location pair captured at check-in or check-out.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Presence holds the fields that are only meaningful while Status is present.
// A Record for any other status never carries a Presence at all, so the
// status/field coupling holds by construction.
type Presence struct {
	CheckInBucket  CheckInBucket  `json:"check_in_bucket,omitempty"`
	WorkLocation   WorkLocation   `json:"work_location,omitempty"`
	CheckInCoords  *Coordinates   `json:"check_in_coordinates,omitempty"`
	CheckOutBucket CheckOutBucket `json:"check_out_bucket,omitempty"`
	CheckOutCoords *Coordinates   `json:"check_out_coordinates,omitempty"`
}

func (p *Presence) clone() *Presence {
	if p == nil {
		return nil
	}
	cp := *p
	if p.CheckInCoords != nil {
		c := *p.CheckInCoords
		cp.CheckInCoords = &c
	}
	if p.CheckOutCoords != nil {
		c := *p.CheckOutCoords
		cp.CheckOutCoords = &c
	}
	return &cp
}

// Record is the per-employee-per-day attendance value.
type Record struct {
	Status   Status    `json:"status"`
	Notes    string    `json:"notes,omitempty"`
	Presence *Presence `json:"presence,omitempty"`
}

// Clone returns a deep copy, so ledger internals never leak to callers.
func (r Record) Clone() Record {
	r.Presence = r.Presence.clone()
	return r
}

// HasCheckIn reports whether a check-in time bucket has been recorded.
func (r Record) HasCheckIn() bool {
	return r.Presence != nil && r.Presence.CheckInBucket != ""
}

// HasCheckOut reports whether a check-out time bucket has been recorded.
func (r Record) HasCheckOut() bool {
	return r.Presence != nil && r.Presence.CheckOutBucket != ""
}

// CanCheckOut is the check-out affordance predicate: present, checked in,
// not yet checked out.
func (r Record) CanCheckOut() bool {
	return r.Status == StatusPresent && r.HasCheckIn() && !r.HasCheckOut()
}

// CheckInUpdate replaces a record's check-in data as a group.
type CheckInUpdate struct {
	Bucket       CheckInBucket
	WorkLocation WorkLocation
	Coordinates  *Coordinates
}

// CheckOutUpdate replaces a record's check-out data as a group. The zero
// value clears any prior check-out.
type CheckOutUpdate struct {
	Bucket      CheckOutBucket
	Coordinates *Coordinates
}

// Patch is a partial update merged by Ledger.Upsert. Nil fields are left
// unchanged; a non-nil group pointer replaces that group whole.
type Patch struct {
	Status   *Status
	Notes    *string
	CheckIn  *CheckInUpdate
	CheckOut *CheckOutUpdate
}
