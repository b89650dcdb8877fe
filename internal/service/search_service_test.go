package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/KJohnson82/MMPD/internal/model"
)

func setupTestSearchService() (SearchService, *fakeStore) {
	store := newFakeStore()
	return NewSearchService(store.repo(), zap.NewNop()), store
}

func TestSearch_BlankTermSkipsStore(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypePlant, "Plant A", true)

	for _, term := range []string{"", "   ", "\t"} {
		resp := svc.SearchAll(context.Background(), term)
		assert.Equal(t, term, resp.Term)
		assert.False(t, resp.HasResults)
		assert.Zero(t, resp.TotalResults)
		assert.NotNil(t, resp.Employees)
	}
	assert.Zero(t, store.listCalls.Load(), "空白搜索词不应访问存储")
}

func TestSearch_CaseInsensitiveAcrossTypes(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypePlant, "Birmingham Plant", true)
	store.addDepartment(20, 10, "Shipping", true).ManagerName = strPtr("Sam BIRMINGHAM")
	store.addEmployee(30, intPtr(20), intPtr(10), "Jane", "Doe", true).JobTitle = "birmingham liaison"
	store.addEmployee(31, intPtr(20), intPtr(10), "John", "Smith", true)

	resp := svc.SearchAll(context.Background(), "BirMingHam")
	assert.Len(t, resp.Employees, 1)
	assert.Len(t, resp.Departments, 1)
	assert.Len(t, resp.Locations, 1)
	assert.Equal(t, 3, resp.TotalResults)
	assert.True(t, resp.HasResults)
}

func TestSearch_ExcludesInactive(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypePlant, "Closed Plant", false)
	store.addEmployee(30, nil, nil, "Closed", "Person", false)

	resp := svc.SearchAll(context.Background(), "closed")
	assert.False(t, resp.HasResults)
}

func TestSearch_PerTypeLimit(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypePlant, "Plant A", true)
	for i := 0; i < SearchResultLimit+5; i++ {
		store.addEmployee(100+i, nil, intPtr(10), fmt.Sprintf("Smith%02d", i), "Worker", true)
	}
	store.addDepartment(20, 10, "Smithing", true)

	resp := svc.SearchAll(context.Background(), "smith")
	assert.Len(t, resp.Employees, SearchResultLimit)
	assert.Len(t, resp.Departments, 1)
	assert.Equal(t, SearchResultLimit+1, resp.TotalResults)
	// 按存储顺序截断
	assert.Equal(t, "Smith00", resp.Employees[0].FirstName)
}

func TestSearch_MatchesLocationNumber(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypeMetalMart, "Mart", true).Number = intPtr(417)
	store.addLocation(11, model.LocationTypeMetalMart, "Other Mart", true)

	resp := svc.SearchAll(context.Background(), "41")
	if assert.Len(t, resp.Locations, 1) {
		assert.Equal(t, 10, resp.Locations[0].ID)
	}
}

func TestSearch_FailureIsolatedPerType(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addLocation(10, model.LocationTypePlant, "Gadsden", true)
	store.addDepartment(20, 10, "Gadsden Sales", true)
	store.addEmployee(30, intPtr(20), intPtr(10), "Gadsden", "Rep", true)
	store.listDepartmentsErr = errors.New("timeout")

	resp := svc.SearchAll(context.Background(), "gadsden")
	assert.Len(t, resp.Employees, 1)
	assert.Empty(t, resp.Departments)
	assert.NotNil(t, resp.Departments)
	assert.Len(t, resp.Locations, 1)
	assert.Equal(t, 2, resp.TotalResults)
}

func TestSearch_UnicodeLowercaseFolding(t *testing.T) {
	svc, store := setupTestSearchService()
	store.addEmployee(30, nil, nil, "Lord", "\u212Aelvin", true)

	resp := svc.SearchAll(context.Background(), "kelv")
	assert.Len(t, resp.Employees, 1, "开尔文符号按小写映射视同 k")
}
