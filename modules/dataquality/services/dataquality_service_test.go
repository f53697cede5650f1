package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

// stubTx satisfies pgx.Tx for contexts handed to a fake repository. No query
// ever reaches it.
type stubTx struct{ pgx.Tx }

func testContext() context.Context {
	ctx := composables.WithOrganizationID(context.Background(), uuid.New())
	return composables.WithTx(ctx, stubTx{})
}

type fakeRepo struct {
	orphans      map[catalog.Domain][]OrphanedValue
	unmapped     map[catalog.Domain]int64
	managed      map[catalog.Domain]int64
	catalogNames map[catalog.Domain][]string
	links        []ManagerLink

	existingTargets map[uuid.UUID]bool
	created         []string
	linked          map[string]int64
	importable      map[catalog.Domain]int64

	namesErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orphans:         map[catalog.Domain][]OrphanedValue{},
		unmapped:        map[catalog.Domain]int64{},
		managed:         map[catalog.Domain]int64{},
		catalogNames:    map[catalog.Domain][]string{},
		existingTargets: map[uuid.UUID]bool{},
		linked:          map[string]int64{},
		importable:      map[catalog.Domain]int64{},
	}
}

func (f *fakeRepo) ListOrphanedValues(_ context.Context, domain catalog.Domain) ([]OrphanedValue, error) {
	return f.orphans[domain], nil
}

func (f *fakeRepo) CountUnmapped(_ context.Context, domain catalog.Domain) (int64, error) {
	return f.unmapped[domain], nil
}

func (f *fakeRepo) CountManaged(_ context.Context, domain catalog.Domain) (int64, error) {
	return f.managed[domain], nil
}

func (f *fakeRepo) ListActiveCatalogNames(_ context.Context, domain catalog.Domain) ([]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	return f.catalogNames[domain], nil
}

func (f *fakeRepo) ListManagerLinks(_ context.Context) ([]ManagerLink, error) {
	return f.links, nil
}

func (f *fakeRepo) CatalogEntryExists(_ context.Context, _ catalog.Domain, id uuid.UUID) (bool, error) {
	return f.existingTargets[id], nil
}

func (f *fakeRepo) CreateCatalogEntry(_ context.Context, _ catalog.Domain, value string) (uuid.UUID, error) {
	f.created = append(f.created, value)
	return uuid.New(), nil
}

func (f *fakeRepo) LinkMembers(_ context.Context, _ catalog.Domain, value string, _ uuid.UUID) (int64, error) {
	return f.linked[strings.ToLower(value)], nil
}

func (f *fakeRepo) ImportMissingCatalogEntries(_ context.Context, domain catalog.Domain) (int64, error) {
	imported := f.importable[domain]
	f.importable[domain] = 0
	return imported, nil
}

func (f *fakeRepo) LinkAllMatchingMembers(_ context.Context, _ catalog.Domain) (int64, error) {
	return 0, nil
}

func TestEntityQuality_AttachesSuggestions(t *testing.T) {
	repo := newFakeRepo()
	repo.managed[catalog.DomainDepartment] = 2
	repo.unmapped[catalog.DomainDepartment] = 4
	repo.catalogNames[catalog.DomainDepartment] = []string{"Engineering", "Sales"}
	repo.orphans[catalog.DomainDepartment] = []OrphanedValue{
		{Value: "Engeneering", UserCount: 3, Users: []string{"a@x.io", "b@x.io", "c@x.io"}},
		{Value: "Marketing", UserCount: 2, Users: []string{"d@x.io", "e@x.io"}},
	}
	svc := NewDataQualityService(repo, nil)

	quality, err := svc.EntityQuality(testContext(), catalog.DomainDepartment)

	require.NoError(t, err)
	require.Equal(t, int64(2), quality.Managed)
	require.Equal(t, int64(4), quality.Unmapped)
	require.Len(t, quality.Orphaned, 2)
	require.NotNil(t, quality.Orphaned[0].SuggestedMatch)
	require.Equal(t, "Engineering", *quality.Orphaned[0].SuggestedMatch)
	require.Nil(t, quality.Orphaned[1].SuggestedMatch)
}

func TestEntityQuality_CostCentersGetNoSuggestions(t *testing.T) {
	repo := newFakeRepo()
	repo.catalogNames[catalog.DomainCostCenter] = []string{"CC-100"}
	repo.orphans[catalog.DomainCostCenter] = []OrphanedValue{
		{Value: "CC-100x", UserCount: 1, Users: []string{"a@x.io"}},
	}
	svc := NewDataQualityService(repo, nil)

	quality, err := svc.EntityQuality(testContext(), catalog.DomainCostCenter)

	require.NoError(t, err)
	require.Nil(t, quality.Orphaned[0].SuggestedMatch)
}

func TestEntityQuality_SuggestionLookupFailureIsAdvisory(t *testing.T) {
	repo := newFakeRepo()
	repo.namesErr = pgx.ErrTxClosed
	repo.orphans[catalog.DomainDepartment] = []OrphanedValue{
		{Value: "Engeneering", UserCount: 3},
	}
	svc := NewDataQualityService(repo, nil)

	quality, err := svc.EntityQuality(testContext(), catalog.DomainDepartment)

	require.NoError(t, err)
	require.Len(t, quality.Orphaned, 1)
	require.Nil(t, quality.Orphaned[0].SuggestedMatch)
}

func TestEntityQuality_EmptyOrphansIsNotNil(t *testing.T) {
	svc := NewDataQualityService(newFakeRepo(), nil)

	quality, err := svc.EntityQuality(testContext(), catalog.DomainLocation)

	require.NoError(t, err)
	require.NotNil(t, quality.Orphaned)
	require.Empty(t, quality.Orphaned)
}

func TestOrphans_TagsDomains(t *testing.T) {
	repo := newFakeRepo()
	repo.orphans[catalog.DomainDepartment] = []OrphanedValue{{Value: "Marketing", UserCount: 2}}
	repo.orphans[catalog.DomainLocation] = []OrphanedValue{{Value: "Berlin", UserCount: 1}}
	svc := NewDataQualityService(repo, nil)

	orphans, err := svc.Orphans(testContext())

	require.NoError(t, err)
	require.Len(t, orphans, 2)
	require.Equal(t, "department", orphans[0].Field)
	require.Equal(t, "Marketing", orphans[0].Value)
	require.Equal(t, "location", orphans[1].Field)
	require.Equal(t, "Berlin", orphans[1].Value)
}

func TestReport_MergesAllAnalyses(t *testing.T) {
	repo := newFakeRepo()
	repo.managed[catalog.DomainDepartment] = 5
	repo.managed[catalog.DomainLocation] = 3
	repo.managed[catalog.DomainCostCenter] = 1
	managerID := uuid.New()
	repo.links = []ManagerLink{
		{ID: managerID, IsActive: true},
		{ID: uuid.New(), ManagerID: &managerID, IsActive: true},
	}
	svc := NewDataQualityService(repo, nil)

	report, err := svc.Report(testContext())

	require.NoError(t, err)
	require.Equal(t, int64(5), report.Departments.Managed)
	require.Equal(t, int64(3), report.Locations.Managed)
	require.Equal(t, int64(1), report.CostCenters.Managed)
	require.Equal(t, int64(1), report.Managers.Valid)
	require.False(t, report.Timestamp.IsZero())
}

func TestResolve_IgnoreIsNoop(t *testing.T) {
	svc := NewDataQualityService(nil, nil)

	result, err := svc.Resolve(testContext(), catalog.DomainDepartment, "Marketing", ResolutionIgnore, nil)

	require.NoError(t, err)
	require.Zero(t, result.Affected)
}

func TestResolve_RequiresValue(t *testing.T) {
	svc := NewDataQualityService(nil, nil)

	_, err := svc.Resolve(testContext(), catalog.DomainDepartment, "   ", ResolutionMap, nil)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusBadRequest, svcErr.Status)
	require.Equal(t, "DQ_INVALID_BODY", svcErr.Code)
}

func TestResolve_MapRequiresTarget(t *testing.T) {
	svc := NewDataQualityService(nil, nil)

	_, err := svc.Resolve(testContext(), catalog.DomainDepartment, "Marketing", ResolutionMap, nil)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusBadRequest, svcErr.Status)
	require.Equal(t, "DQ_TARGET_REQUIRED", svcErr.Code)
}

func TestResolve_CostCenterNotImplemented(t *testing.T) {
	svc := NewDataQualityService(nil, nil)
	targetID := uuid.New()

	_, err := svc.Resolve(testContext(), catalog.DomainCostCenter, "CC-100", ResolutionMap, &targetID)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusNotImplemented, svcErr.Status)
	require.Equal(t, "DQ_NOT_IMPLEMENTED", svcErr.Code)
}

func TestResolve_MapLinksMatchingMembers(t *testing.T) {
	repo := newFakeRepo()
	targetID := uuid.New()
	repo.existingTargets[targetID] = true
	repo.linked["marketing"] = 2
	svc := NewDataQualityService(repo, nil)

	result, err := svc.Resolve(testContext(), catalog.DomainDepartment, "Marketing", ResolutionMap, &targetID)

	require.NoError(t, err)
	require.Equal(t, int64(2), result.Affected)
	require.Empty(t, repo.created)
}

func TestResolve_MapUnknownTarget(t *testing.T) {
	repo := newFakeRepo()
	targetID := uuid.New()
	svc := NewDataQualityService(repo, nil)

	_, err := svc.Resolve(testContext(), catalog.DomainDepartment, "Marketing", ResolutionMap, &targetID)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusNotFound, svcErr.Status)
	require.Equal(t, "DQ_TARGET_NOT_FOUND", svcErr.Code)
}

func TestResolve_CreateInsertsAndLinks(t *testing.T) {
	repo := newFakeRepo()
	repo.linked["marketing"] = 2
	svc := NewDataQualityService(repo, nil)

	result, err := svc.Resolve(testContext(), catalog.DomainDepartment, "Marketing", ResolutionCreate, nil)

	require.NoError(t, err)
	require.Equal(t, int64(2), result.Affected)
	require.Equal(t, []string{"Marketing"}, repo.created)
}

func TestAutoImport_SecondRunImportsNothing(t *testing.T) {
	repo := newFakeRepo()
	repo.importable[catalog.DomainLocation] = 3
	svc := NewDataQualityService(repo, nil)

	first, err := svc.AutoImport(testContext(), catalog.DomainLocation)
	require.NoError(t, err)
	require.Equal(t, int64(3), first.Imported)

	second, err := svc.AutoImport(testContext(), catalog.DomainLocation)
	require.NoError(t, err)
	require.Zero(t, second.Imported)
}

func TestParseResolution(t *testing.T) {
	for _, raw := range []string{"map", "create", "ignore"} {
		resolution, ok := ParseResolution(raw)
		require.True(t, ok)
		require.Equal(t, raw, string(resolution))
	}

	_, ok := ParseResolution("merge")
	require.False(t, ok)
}
