package services

import "github.com/google/uuid"

// managerWalkLimit bounds the chain walk. Cycles whose first repeat sits
// beyond this many hops go undetected, a documented trade against pathological
// data.
const managerWalkLimit = 10

// analyzeManagerLinks classifies every reporting edge and counts the distinct
// members participating in at least one cycle.
func analyzeManagerLinks(links []ManagerLink) ManagerQuality {
	byID := make(map[uuid.UUID]ManagerLink, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}

	var quality ManagerQuality
	for _, l := range links {
		if l.ManagerID == nil {
			continue
		}
		manager, ok := byID[*l.ManagerID]
		if ok && manager.IsActive {
			quality.Valid++
		} else {
			quality.Orphaned++
		}
	}

	circular := make(map[uuid.UUID]struct{})
	for _, l := range links {
		if l.ManagerID == nil {
			continue
		}
		markCycle(l, byID, circular)
	}
	quality.Circular = int64(len(circular))
	return quality
}

// markCycle walks the chain starting at l for up to managerWalkLimit hops.
// The first node revisited within the chain's own path closes the cycle;
// every node from that first occurrence onward is recorded.
func markCycle(l ManagerLink, byID map[uuid.UUID]ManagerLink, circular map[uuid.UUID]struct{}) {
	path := make([]uuid.UUID, 0, managerWalkLimit+1)
	seen := make(map[uuid.UUID]int, managerWalkLimit+1)

	current := l
	for hop := 0; hop <= managerWalkLimit; hop++ {
		if at, ok := seen[current.ID]; ok {
			for _, id := range path[at:] {
				circular[id] = struct{}{}
			}
			return
		}
		seen[current.ID] = len(path)
		path = append(path, current.ID)

		if current.ManagerID == nil {
			return
		}
		next, ok := byID[*current.ManagerID]
		if !ok {
			return
		}
		current = next
	}
}
