package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func managerChain(n int, closed bool) []ManagerLink {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	links := make([]ManagerLink, n)
	for i := range links {
		links[i] = ManagerLink{ID: ids[i], IsActive: true}
		if i+1 < n {
			links[i].ManagerID = &ids[i+1]
		} else if closed {
			links[i].ManagerID = &ids[0]
		}
	}
	return links
}

func TestAnalyzeManagerLinks_Empty(t *testing.T) {
	quality := analyzeManagerLinks(nil)

	require.Equal(t, ManagerQuality{}, quality)
}

func TestAnalyzeManagerLinks_ValidChain(t *testing.T) {
	quality := analyzeManagerLinks(managerChain(4, false))

	require.Equal(t, int64(3), quality.Valid)
	require.Zero(t, quality.Orphaned)
	require.Zero(t, quality.Circular)
}

func TestAnalyzeManagerLinks_OrphanedMissingManager(t *testing.T) {
	missing := uuid.New()
	links := []ManagerLink{
		{ID: uuid.New(), ManagerID: &missing, IsActive: true},
	}

	quality := analyzeManagerLinks(links)

	require.Zero(t, quality.Valid)
	require.Equal(t, int64(1), quality.Orphaned)
}

func TestAnalyzeManagerLinks_OrphanedInactiveManager(t *testing.T) {
	managerID := uuid.New()
	links := []ManagerLink{
		{ID: managerID, IsActive: false},
		{ID: uuid.New(), ManagerID: &managerID, IsActive: true},
	}

	quality := analyzeManagerLinks(links)

	require.Zero(t, quality.Valid)
	require.Equal(t, int64(1), quality.Orphaned)
}

func TestAnalyzeManagerLinks_SelfLoop(t *testing.T) {
	id := uuid.New()
	links := []ManagerLink{{ID: id, ManagerID: &id, IsActive: true}}

	quality := analyzeManagerLinks(links)

	require.Equal(t, int64(1), quality.Circular)
}

func TestAnalyzeManagerLinks_TwoCycle(t *testing.T) {
	quality := analyzeManagerLinks(managerChain(2, true))

	require.Equal(t, int64(2), quality.Circular)
}

func TestAnalyzeManagerLinks_ThreeCycle(t *testing.T) {
	quality := analyzeManagerLinks(managerChain(3, true))

	require.Equal(t, int64(3), quality.Circular)
}

func TestAnalyzeManagerLinks_DisjointCycles(t *testing.T) {
	links := append(managerChain(2, true), managerChain(3, true)...)

	quality := analyzeManagerLinks(links)

	require.Equal(t, int64(5), quality.Circular)
}

func TestAnalyzeManagerLinks_CycleAtWalkLimit(t *testing.T) {
	quality := analyzeManagerLinks(managerChain(10, true))

	require.Equal(t, int64(10), quality.Circular)
}

func TestAnalyzeManagerLinks_CycleBeyondWalkLimitUndetected(t *testing.T) {
	quality := analyzeManagerLinks(managerChain(11, true))

	require.Zero(t, quality.Circular)
}
