// Package member defines the organization member record, the subject of all
// data-quality analysis.
package member

import (
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = gerrors.New("member not found")

// Record is one organization member. The free-text classification fields
// (Department, Location, CostCenter) are organization-entered and
// unnormalized; the matching *ID fields are the resolved catalog references.
// A record with a non-null reference is "managed"; a non-blank free-text
// value with a null reference is an orphan candidate.
type Record struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string

	Department *string
	Location   *string
	CostCenter *string

	DepartmentID *uuid.UUID
	LocationID   *uuid.UUID
	CostCenterID *uuid.UUID

	ReportingManagerID *uuid.UUID

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}
