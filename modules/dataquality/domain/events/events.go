// Package events defines the domain events emitted by reconciliation writes.
package events

import (
	"time"

	"github.com/google/uuid"
)

type OrphanResolvedEvent struct {
	OrganizationID uuid.UUID
	Domain         string
	Value          string
	Resolution     string
	TargetID       *uuid.UUID
	Affected       int64
	OccurredAt     time.Time
}

type AutoImportCompletedEvent struct {
	OrganizationID uuid.UUID
	Domain         string
	Imported       int64
	OccurredAt     time.Time
}
