package dtos

import (
	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/directory/domain/member"
)

type MemberResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`

	Department *string `json:"department,omitempty"`
	Location   *string `json:"location,omitempty"`
	CostCenter *string `json:"costCenter,omitempty"`

	DepartmentID *uuid.UUID `json:"departmentId,omitempty"`
	LocationID   *uuid.UUID `json:"locationId,omitempty"`
	CostCenterID *uuid.UUID `json:"costCenterId,omitempty"`

	ReportingManagerID *uuid.UUID `json:"reportingManagerId,omitempty"`

	IsActive bool `json:"isActive"`
}

func MemberFromDomain(m member.Record) MemberResponse {
	return MemberResponse{
		ID:                 m.ID,
		Email:              m.Email,
		Department:         m.Department,
		Location:           m.Location,
		CostCenter:         m.CostCenter,
		DepartmentID:       m.DepartmentID,
		LocationID:         m.LocationID,
		CostCenterID:       m.CostCenterID,
		ReportingManagerID: m.ReportingManagerID,
		IsActive:           m.IsActive,
	}
}

func MembersFromDomain(records []member.Record) []MemberResponse {
	out := make([]MemberResponse, 0, len(records))
	for _, m := range records {
		out = append(out, MemberFromDomain(m))
	}
	return out
}
