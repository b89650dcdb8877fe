package service

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
	pkgerrors "github.com/KJohnson82/MMPD/pkg/errors"
)

// ── 内存数据源：四个 Mock Repository 共享，保证父子关系一致 ──

type fakeStore struct {
	types       map[int]*model.LocationType
	locations   map[int]*model.Location
	departments map[int]*model.Department
	employees   map[int]*model.Employee
	roles       map[int]bool
	accounts    map[string]*model.UserAccount
	nextID      int

	// 故障注入
	listLocationsErr   error
	listDepartmentsErr error
	listEmployeesErr   error
	updateErr          error
	createErr          error
	pingErr            error
	vanishOnUpdate     bool // Update 前记录被并发删除
	listCalls          atomic.Int64
}

func newFakeStore() *fakeStore {
	s := &fakeStore{
		types:       make(map[int]*model.LocationType),
		locations:   make(map[int]*model.Location),
		departments: make(map[int]*model.Department),
		employees:   make(map[int]*model.Employee),
		roles:       map[int]bool{model.RoleAdmin: true, model.RoleEditor: true, model.RoleViewer: true},
		accounts:    make(map[string]*model.UserAccount),
		nextID:      1000,
	}
	for id, name := range map[int]string{1: "Corporate", 2: "Metal Mart", 3: "Service Center", 4: "Plant"} {
		s.types[id] = &model.LocationType{ID: id, Name: name}
	}
	return s
}

func (s *fakeStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		LocationType: &mockLocationTypeRepo{s},
		Location:     &mockLocationRepo{s},
		Department:   &mockDeptRepo{s},
		Employee:     &mockEmployeeRepo{s},
		UserAccount:  &mockUserAccountRepo{s},
		Health:       &mockHealthRepo{s},
	}
}

// ── 测试数据构造 ──

var baseTime = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func (s *fakeStore) addLocation(id, typeID int, name string, active bool) *model.Location {
	loc := &model.Location{
		ID: id, Name: name, Address: "1 Main St", City: "Adamsville", State: "AL", Zip: "35005",
		LocationTypeID: typeID,
	}
	loc.Active = model.BoolPtr(active)
	loc.RecordAdd = baseTime
	s.locations[id] = loc
	return loc
}

func (s *fakeStore) addDepartment(id, locationID int, name string, active bool) *model.Department {
	dept := &model.Department{ID: id, Name: name, LocationID: locationID}
	dept.Active = model.BoolPtr(active)
	dept.RecordAdd = baseTime
	s.departments[id] = dept
	return dept
}

func (s *fakeStore) addEmployee(id int, deptID, locID *int, first, last string, active bool) *model.Employee {
	emp := &model.Employee{
		ID: id, FirstName: first, LastName: last, JobTitle: "Technician",
		Phone: "555-123-4567", Email: strings.ToLower(first) + "@example.com",
		DepartmentID: deptID, LocationID: locID,
	}
	emp.Active = model.BoolPtr(active)
	emp.RecordAdd = baseTime
	s.employees[id] = emp
	return emp
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func numberOf(l *model.Location) int {
	if l.Number == nil {
		return 0
	}
	return *l.Number
}

// ── Mock LocationTypeRepository ──

type mockLocationTypeRepo struct{ s *fakeStore }

func (m *mockLocationTypeRepo) Create(_ context.Context, lt *model.LocationType) error {
	lt.ID = m.s.id()
	cp := *lt
	m.s.types[lt.ID] = &cp
	return nil
}

func (m *mockLocationTypeRepo) GetByID(_ context.Context, id int) (*model.LocationType, error) {
	if lt, ok := m.s.types[id]; ok {
		cp := *lt
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationTypeRepo) List(_ context.Context) ([]model.LocationType, error) {
	result := make([]model.LocationType, 0, len(m.s.types))
	for _, lt := range m.s.types {
		result = append(result, *lt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLocationTypeRepo) Update(_ context.Context, lt *model.LocationType) error {
	existing, ok := m.s.types[lt.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Name = lt.Name
	return nil
}

func (m *mockLocationTypeRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.s.types[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, loc := range m.s.locations {
		if loc.LocationTypeID == id {
			return fkViolation()
		}
	}
	delete(m.s.types, id)
	return nil
}

func (m *mockLocationTypeRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := m.s.types[id]
	return ok, nil
}

// ── Mock LocationRepository ──

type mockLocationRepo struct{ s *fakeStore }

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if m.s.createErr != nil {
		return m.s.createErr
	}
	loc.ID = m.s.id()
	cp := *loc
	m.s.locations[loc.ID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id int) (*model.Location, error) {
	loc, ok := m.s.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *loc
	if lt, ok := m.s.types[loc.LocationTypeID]; ok {
		ltCopy := *lt
		cp.LocationType = &ltCopy
	}
	return &cp, nil
}

func (m *mockLocationRepo) ListActive(_ context.Context, filter repository.LocationFilter) ([]model.Location, error) {
	m.s.listCalls.Add(1)
	if m.s.listLocationsErr != nil {
		return nil, m.s.listLocationsErr
	}
	var result []model.Location
	for _, loc := range m.s.locations {
		if !loc.IsActive() {
			continue
		}
		if filter.TypeID != nil && loc.LocationTypeID != *filter.TypeID {
			continue
		}
		if filter.Since != nil && !loc.RecordAdd.After(*filter.Since) {
			continue
		}
		cp := *loc
		if lt, ok := m.s.types[loc.LocationTypeID]; ok {
			ltCopy := *lt
			cp.LocationType = &ltCopy
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.Order == repository.OrderByName {
			return a.Name < b.Name
		}
		if a.LocationTypeID != b.LocationTypeID {
			return a.LocationTypeID < b.LocationTypeID
		}
		if numberOf(&a) != numberOf(&b) {
			return numberOf(&a) < numberOf(&b)
		}
		return a.Name < b.Name
	})
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	if m.s.vanishOnUpdate {
		delete(m.s.locations, loc.ID)
		return pkgerrors.ErrConcurrentUpdate
	}
	if m.s.updateErr != nil {
		return m.s.updateErr
	}
	if _, ok := m.s.locations[loc.ID]; !ok {
		return pkgerrors.ErrConcurrentUpdate
	}
	cp := *loc
	cp.LocationType, cp.Departments = nil, nil
	m.s.locations[loc.ID] = &cp
	return nil
}

func (m *mockLocationRepo) SetActive(_ context.Context, id int, active bool) error {
	loc, ok := m.s.locations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	loc.Active = model.BoolPtr(active)
	loc.RecordAdd = nowFunc()
	return nil
}

func (m *mockLocationRepo) CountActiveDepartments(_ context.Context, id int) (int64, error) {
	var n int64
	for _, d := range m.s.departments {
		if d.LocationID == id && d.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockLocationRepo) CountActiveEmployees(_ context.Context, id int) (int64, error) {
	var n int64
	for _, e := range m.s.employees {
		if e.DepartmentID == nil || !e.IsActive() {
			continue
		}
		if d, ok := m.s.departments[*e.DepartmentID]; ok && d.LocationID == id {
			n++
		}
	}
	return n, nil
}

func (m *mockLocationRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, l := range m.s.locations {
		if l.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockLocationRepo) MaxRecordAdd(_ context.Context) (*time.Time, error) {
	var latest *time.Time
	for _, l := range m.s.locations {
		t := l.RecordAdd
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct{ s *fakeStore }

func (m *mockDeptRepo) withLocation(d *model.Department) model.Department {
	cp := *d
	if loc, ok := m.s.locations[d.LocationID]; ok {
		locCopy := *loc
		cp.Location = &locCopy
	}
	return cp
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if m.s.createErr != nil {
		return m.s.createErr
	}
	dept.ID = m.s.id()
	cp := *dept
	m.s.departments[dept.ID] = &cp
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id int) (*model.Department, error) {
	d, ok := m.s.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := m.withLocation(d)
	return &cp, nil
}

func (m *mockDeptRepo) ListActive(_ context.Context, locationID *int) ([]model.Department, error) {
	m.s.listCalls.Add(1)
	if m.s.listDepartmentsErr != nil {
		return nil, m.s.listDepartmentsErr
	}
	var result []model.Department
	for _, d := range m.s.departments {
		if !d.IsActive() || (locationID != nil && d.LocationID != *locationID) {
			continue
		}
		result = append(result, m.withLocation(d))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDeptRepo) ListActiveByLocationIDs(_ context.Context, locationIDs []int) ([]model.Department, error) {
	if m.s.listDepartmentsErr != nil {
		return nil, m.s.listDepartmentsErr
	}
	wanted := make(map[int]bool, len(locationIDs))
	for _, id := range locationIDs {
		wanted[id] = true
	}
	result := []model.Department{}
	for _, d := range m.s.departments {
		if d.IsActive() && wanted[d.LocationID] {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	if m.s.vanishOnUpdate {
		delete(m.s.departments, dept.ID)
		return pkgerrors.ErrConcurrentUpdate
	}
	if m.s.updateErr != nil {
		return m.s.updateErr
	}
	if _, ok := m.s.departments[dept.ID]; !ok {
		return pkgerrors.ErrConcurrentUpdate
	}
	cp := *dept
	cp.Location, cp.Employees = nil, nil
	m.s.departments[dept.ID] = &cp
	return nil
}

func (m *mockDeptRepo) SetActive(_ context.Context, id int, active bool) error {
	d, ok := m.s.departments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Active = model.BoolPtr(active)
	d.RecordAdd = nowFunc()
	return nil
}

func (m *mockDeptRepo) CountActiveEmployees(_ context.Context, id int) (int64, error) {
	var n int64
	for _, e := range m.s.employees {
		if e.DepartmentID != nil && *e.DepartmentID == id && e.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockDeptRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, d := range m.s.departments {
		if d.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockDeptRepo) MaxRecordAdd(_ context.Context) (*time.Time, error) {
	var latest *time.Time
	for _, d := range m.s.departments {
		t := d.RecordAdd
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct{ s *fakeStore }

func (m *mockEmployeeRepo) withRefs(e *model.Employee) model.Employee {
	cp := *e
	if e.LocationID != nil {
		if loc, ok := m.s.locations[*e.LocationID]; ok {
			locCopy := *loc
			cp.Location = &locCopy
		}
	}
	if e.DepartmentID != nil {
		if d, ok := m.s.departments[*e.DepartmentID]; ok {
			dCopy := *d
			cp.Department = &dCopy
		}
	}
	return cp
}

func sortEmployees(emps []model.Employee) {
	sort.Slice(emps, func(i, j int) bool {
		if emps[i].FirstName != emps[j].FirstName {
			return emps[i].FirstName < emps[j].FirstName
		}
		if emps[i].LastName != emps[j].LastName {
			return emps[i].LastName < emps[j].LastName
		}
		return emps[i].ID < emps[j].ID
	})
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if m.s.createErr != nil {
		return m.s.createErr
	}
	emp.ID = m.s.id()
	cp := *emp
	m.s.employees[emp.ID] = &cp
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id int) (*model.Employee, error) {
	e, ok := m.s.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := m.withRefs(e)
	return &cp, nil
}

func (m *mockEmployeeRepo) ListActive(_ context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	m.s.listCalls.Add(1)
	if m.s.listEmployeesErr != nil {
		return nil, m.s.listEmployeesErr
	}
	var result []model.Employee
	for _, e := range m.s.employees {
		if !e.IsActive() {
			continue
		}
		if filter.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if filter.LocationID != nil && (e.LocationID == nil || *e.LocationID != *filter.LocationID) {
			continue
		}
		result = append(result, m.withRefs(e))
	}
	sortEmployees(result)
	return result, nil
}

func (m *mockEmployeeRepo) ListActiveByDepartmentIDs(_ context.Context, departmentIDs []int) ([]model.Employee, error) {
	if m.s.listEmployeesErr != nil {
		return nil, m.s.listEmployeesErr
	}
	wanted := make(map[int]bool, len(departmentIDs))
	for _, id := range departmentIDs {
		wanted[id] = true
	}
	result := []model.Employee{}
	for _, e := range m.s.employees {
		if e.IsActive() && e.DepartmentID != nil && wanted[*e.DepartmentID] {
			result = append(result, *e)
		}
	}
	sortEmployees(result)
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	if m.s.vanishOnUpdate {
		delete(m.s.employees, emp.ID)
		return pkgerrors.ErrConcurrentUpdate
	}
	if m.s.updateErr != nil {
		return m.s.updateErr
	}
	if _, ok := m.s.employees[emp.ID]; !ok {
		return pkgerrors.ErrConcurrentUpdate
	}
	cp := *emp
	cp.Location, cp.Department = nil, nil
	m.s.employees[emp.ID] = &cp
	return nil
}

func (m *mockEmployeeRepo) SetActive(_ context.Context, id int, active bool) error {
	e, ok := m.s.employees[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Active = model.BoolPtr(active)
	e.RecordAdd = nowFunc()
	return nil
}

func (m *mockEmployeeRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, e := range m.s.employees {
		if e.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockEmployeeRepo) MaxRecordAdd(_ context.Context) (*time.Time, error) {
	var latest *time.Time
	for _, e := range m.s.employees {
		t := e.RecordAdd
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}

// ── Mock UserAccountRepository ──

type mockUserAccountRepo struct{ s *fakeStore }

func (m *mockUserAccountRepo) Create(_ context.Context, account *model.UserAccount) error {
	account.ID = m.s.id()
	cp := *account
	m.s.accounts[account.Username] = &cp
	return nil
}

func (m *mockUserAccountRepo) GetByUsername(_ context.Context, username string) (*model.UserAccount, error) {
	if a, ok := m.s.accounts[username]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserAccountRepo) RoleExists(_ context.Context, roleID int) (bool, error) {
	return m.s.roles[roleID], nil
}

// ── Mock HealthRepository ──

type mockHealthRepo struct{ s *fakeStore }

func (m *mockHealthRepo) Ping(_ context.Context) error {
	return m.s.pingErr
}
