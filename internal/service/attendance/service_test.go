package attendance

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/attendance"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type memoryAttendanceRepo struct {
	mu      sync.Mutex
	seq     int
	records map[string]attendance.Attendance
}

func newMemoryAttendanceRepo() *memoryAttendanceRepo {
	return &memoryAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (m *memoryAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (m *memoryAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.records {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (m *memoryAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range m.records {
		switch filter.Scope {
		case attendance.ScopeOwn:
			if a.EmployeeID != filter.EmployeeID {
				continue
			}
		case attendance.ScopeTeam:
			if a.TeamID == nil || *a.TeamID != filter.TeamID {
				continue
			}
		case attendance.ScopeDepartment:
			if a.DepartmentID == nil || *a.DepartmentID != filter.DepartmentID {
				continue
			}
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (m *memoryAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	a.ID = "a-" + strconv.Itoa(m.seq)
	m.records[a.ID] = a
	return a, nil
}

func (m *memoryAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	m.records[a.ID] = a
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byEmail map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	e, ok := f.byEmail[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeIdentityRepo struct {
	identity.IdentityRepository
	known map[string]identity.Identity
}

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	ident, ok := f.known[id]
	if !ok {
		return identity.Identity{}, identity.ErrIdentityNotFound
	}
	return ident, nil
}

type memoryRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (m *memoryRecorder) Record(ctx context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func principalFor(t *testing.T, id string, role identity.Role) identity.Principal {
	t.Helper()
	perms, err := identity.DefaultPermissions(role)
	require.NoError(t, err)
	return identity.Principal{ID: id, Username: string(role), FullName: "Test " + string(role), Role: role, Permissions: identity.NewPermissionSet(perms)}
}

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *memoryAttendanceRepo, *memoryRecorder) {
	t.Helper()
	repo := newMemoryAttendanceRepo()
	recorder := &memoryRecorder{}

	team := "team-1"
	dept := "dep-eng"
	idRepo := &fakeIdentityRepo{known: map[string]identity.Identity{
		"u-sale":       {ID: "u-sale", Email: "sale@staffdesk.io", Role: identity.RoleSale},
		"u-supervisor": {ID: "u-supervisor", Email: "sup@staffdesk.io", Role: identity.RoleSupervisor, TeamID: &team},
		"u-hrstaff":    {ID: "u-hrstaff", Email: "hr@staffdesk.io", Role: identity.RoleHRStaff, DepartmentID: &dept},
		"u-hrm":        {ID: "u-hrm", Email: "hrm@staffdesk.io", Role: identity.RoleHRManager},
	}}
	empRepo := &fakeEmployeeRepo{byEmail: map[string]employee.Employee{
		"sale@staffdesk.io": {ID: "e-sale", Email: "sale@staffdesk.io", DepartmentID: "dep-sales"},
	}}

	svc := NewAttendanceService(repo, empRepo, idRepo, recorder).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo, recorder
}

func TestAttendance_CheckInAndOut(t *testing.T) {
	// 09:30 UTC, thirty minutes late.
	checkInAt := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, checkInAt)
	sale := principalFor(t, "u-sale", identity.RoleSale)

	created, err := svc.CheckIn(context.Background(), sale)
	require.NoError(t, err)
	require.NotNil(t, created.LateMinutes)
	assert.Equal(t, 30, *created.LateMinutes)
	assert.Equal(t, "pending", created.Status)

	_, err = svc.CheckIn(context.Background(), sale)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	svc.now = func() time.Time { return checkInAt.Add(8 * time.Hour) }
	out, err := svc.CheckOut(context.Background(), sale)
	require.NoError(t, err)
	require.NotNil(t, out.WorkMinutes)
	assert.Equal(t, 480, *out.WorkMinutes)

	_, err = svc.CheckOut(context.Background(), sale)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendance_CheckOutWithoutCheckIn(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	sale := principalFor(t, "u-sale", identity.RoleSale)

	_, err := svc.CheckOut(context.Background(), sale)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendance_ScopeResolution(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestService(t, now)

	team := "team-1"
	dept := "dep-eng"
	otherDept := "dep-sales"
	repo.Create(context.Background(), attendance.Attendance{EmployeeID: "e-sale", DepartmentID: &otherDept})
	repo.Create(context.Background(), attendance.Attendance{EmployeeID: "e-eng", DepartmentID: &dept, TeamID: &team})
	repo.Create(context.Background(), attendance.Attendance{EmployeeID: "e-eng2", DepartmentID: &dept})

	// hr_manager holds attendance:view_all.
	all, err := svc.ListAttendance(context.Background(), principalFor(t, "u-hrm", identity.RoleHRManager), attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeAll, all.Scope)
	assert.Equal(t, int64(3), all.Total)

	// hr_staff narrows to the caller's department.
	deptList, err := svc.ListAttendance(context.Background(), principalFor(t, "u-hrstaff", identity.RoleHRStaff), attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeDepartment, deptList.Scope)
	assert.Equal(t, int64(2), deptList.Total)

	// supervisor narrows to the caller's team.
	teamList, err := svc.ListAttendance(context.Background(), principalFor(t, "u-supervisor", identity.RoleSupervisor), attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeTeam, teamList.Scope)
	assert.Equal(t, int64(1), teamList.Total)

	// sale only sees their own records.
	ownList, err := svc.ListAttendance(context.Background(), principalFor(t, "u-sale", identity.RoleSale), attendance.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, attendance.ScopeOwn, ownList.Scope)
	assert.Equal(t, int64(1), ownList.Total)
}

func TestAttendance_ApproveFlow(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	svc, repo, recorder := newTestService(t, now)
	supervisor := principalFor(t, "u-supervisor", identity.RoleSupervisor)

	rec, _ := repo.Create(context.Background(), attendance.Attendance{EmployeeID: "e-sale", Status: attendance.StatusPending})

	approved, err := svc.ApproveAttendance(context.Background(), supervisor, rec.ID, attendance.ApproveRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "u-supervisor", *approved.ApprovedBy)

	_, err = svc.ApproveAttendance(context.Background(), supervisor, rec.ID, attendance.ApproveRequest{Approve: true})
	assert.ErrorIs(t, err, attendance.ErrAlreadyProcessed)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionUpdate, recorder.entries[0].Action)
}

func TestAttendance_Correct(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestService(t, now)
	manager := principalFor(t, "u-hrm", identity.RoleHRManager)

	clockIn := now.Add(-9 * time.Hour)
	rec, _ := repo.Create(context.Background(), attendance.Attendance{
		EmployeeID: "e-sale",
		Status:     attendance.StatusPending,
		ClockIn:    &clockIn,
	})

	clockOut := now.Format(time.RFC3339)
	corrected, err := svc.CorrectAttendance(context.Background(), manager, rec.ID, attendance.CorrectRequest{
		ClockOut: &clockOut,
		Note:     "forgot badge",
	})
	require.NoError(t, err)
	assert.Equal(t, "corrected", corrected.Status)
	require.NotNil(t, corrected.WorkMinutes)
	assert.Equal(t, 540, *corrected.WorkMinutes)
	assert.Equal(t, "forgot badge", *corrected.Note)
}
