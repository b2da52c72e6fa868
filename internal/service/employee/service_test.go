package employee

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type memoryEmployeeRepo struct {
	mu        sync.Mutex
	seq       int
	employees map[string]employee.Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (m *memoryEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []employee.Employee
	for _, e := range m.employees {
		if filter.DepartmentID != "" && e.DepartmentID != filter.DepartmentID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m *memoryEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.ID = "e-" + strconv.Itoa(m.seq)
	m.employees[e.ID] = e
	return e, nil
}

func (m *memoryEmployeeRepo) Update(ctx context.Context, e employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	m.employees[e.ID] = e
	return nil
}

func (m *memoryEmployeeRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *memoryEmployeeRepo) UpdateBaseSalary(ctx context.Context, id string, baseSalary int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.BaseSalary = baseSalary
	m.employees[id] = e
	return nil
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
	return identity.Principal{
		ID:          id,
		Username:    string(role),
		FullName:    "Test " + string(role),
		Role:        role,
		Permissions: identity.NewPermissionSet(perms),
	}
}

func newTestService(t *testing.T) (employee.EmployeeService, *memoryEmployeeRepo, *memoryRecorder) {
	t.Helper()
	repo := newMemoryEmployeeRepo()
	recorder := &memoryRecorder{}
	deptEng := "dep-eng"
	idRepo := &fakeIdentityRepo{known: map[string]identity.Identity{
		"u-hrstaff": {ID: "u-hrstaff", Role: identity.RoleHRStaff, DepartmentID: &deptEng},
	}}
	return NewEmployeeService(repo, idRepo, recorder), repo, recorder
}

func TestEmployeeService_SalaryHiddenWithoutGrant(t *testing.T) {
	svc, repo, _ := newTestService(t)

	e, _ := repo.Create(context.Background(), employee.Employee{
		FullName: "Jordan Vo", DepartmentID: "dep-eng", BaseSalary: 12_000_000, Status: employee.StatusActive,
	})

	// hr_manager holds hr:view_salary.
	manager := principalFor(t, "u-hrm", identity.RoleHRManager)
	withSalary, err := svc.GetEmployee(context.Background(), manager, e.ID)
	require.NoError(t, err)
	require.NotNil(t, withSalary.BaseSalary)
	assert.Equal(t, int64(12_000_000), *withSalary.BaseSalary)

	// hr_staff does not.
	staff := principalFor(t, "u-hrstaff", identity.RoleHRStaff)
	withoutSalary, err := svc.GetEmployee(context.Background(), staff, e.ID)
	require.NoError(t, err)
	assert.Nil(t, withoutSalary.BaseSalary)
}

func TestEmployeeService_DepartmentScopedListing(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.Create(context.Background(), employee.Employee{FullName: "In Dept", DepartmentID: "dep-eng"})
	repo.Create(context.Background(), employee.Employee{FullName: "Elsewhere", DepartmentID: "dep-sales"})

	staff := principalFor(t, "u-hrstaff", identity.RoleHRStaff)
	list, err := svc.ListEmployees(context.Background(), staff, employee.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, "In Dept", list.Employees[0].FullName)

	manager := principalFor(t, "u-hrm", identity.RoleHRManager)
	all, err := svc.ListEmployees(context.Background(), manager, employee.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestEmployeeService_AdjustSalary(t *testing.T) {
	svc, repo, recorder := newTestService(t)
	manager := principalFor(t, "u-hrm", identity.RoleHRManager)

	e, _ := repo.Create(context.Background(), employee.Employee{FullName: "Jordan Vo", BaseSalary: 10_000_000})

	updated, err := svc.AdjustSalary(context.Background(), manager, e.ID, employee.AdjustSalaryRequest{
		BaseSalary: 15_000_000,
		Reason:     "annual review",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BaseSalary)
	assert.Equal(t, int64(15_000_000), *updated.BaseSalary)

	_, err = svc.AdjustSalary(context.Background(), manager, e.ID, employee.AdjustSalaryRequest{
		BaseSalary: 1_000_000,
		Reason:     "should fail",
	})
	assert.ErrorIs(t, err, employee.ErrSalaryBelowMinimum)

	stored, _ := repo.GetByID(context.Background(), e.ID)
	assert.Equal(t, int64(15_000_000), stored.BaseSalary)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionUpdate, recorder.entries[0].Action)
	assert.Contains(t, recorder.entries[0].Description, "annual review")
}

func TestEmployeeService_ExportAudited(t *testing.T) {
	svc, repo, recorder := newTestService(t)
	manager := principalFor(t, "u-hrm", identity.RoleHRManager)

	repo.Create(context.Background(), employee.Employee{FullName: "Jordan Vo", DepartmentID: "dep-eng"})
	repo.Create(context.Background(), employee.Employee{FullName: "Sam Ngo", DepartmentID: "dep-sales"})

	exported, err := svc.ExportEmployees(context.Background(), manager, employee.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, exported, 2)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionExport, recorder.entries[0].Action)
	assert.Contains(t, recorder.entries[0].Description, "2 employees")
}

func TestEmployeeService_DeleteAudited(t *testing.T) {
	svc, repo, recorder := newTestService(t)
	manager := principalFor(t, "u-hrm", identity.RoleHRManager)

	e, _ := repo.Create(context.Background(), employee.Employee{FullName: "Jordan Vo"})

	require.NoError(t, svc.DeleteEmployee(context.Background(), manager, e.ID))

	_, err := repo.GetByID(context.Background(), e.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionDelete, recorder.entries[0].Action)
	assert.Equal(t, audit.EntityEmployee, recorder.entries[0].Entity)
}
