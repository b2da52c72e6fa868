package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrNotCheckedIn        = errors.New("not checked in yet")
	ErrAlreadyCheckedOut   = errors.New("already checked out today")
	ErrAlreadyProcessed    = errors.New("attendance record already processed")
	ErrViewScopeNotGranted = errors.New("no attendance view scope granted")
)
