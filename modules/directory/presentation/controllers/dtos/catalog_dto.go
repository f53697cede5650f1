package dtos

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/modules/directory/services"
	"github.com/helios-hq/helios/pkg/constants"
	"github.com/helios-hq/helios/pkg/serrors"
)

type CreateCatalogEntryRequest struct {
	Code string `json:"code" validate:"omitempty,max=64"`
	Name string `json:"name" validate:"required,max=255"`
}

func (d *CreateCatalogEntryRequest) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	errorMessages := serrors.ValidationErrors{}
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return errorMessages, true
	}
	for _, err := range errs.(validator.ValidationErrors) {
		errorMessages[err.Field()] = fmt.Sprintf("%s failed validation on %q", err.Field(), err.Tag())
	}
	return errorMessages, len(errorMessages) == 0
}

type CatalogEntryResponse struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Code     string    `json:"code,omitempty"`
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive"`
}

func CatalogEntryFromDomain(domain catalog.Domain, e catalog.Entry) CatalogEntryResponse {
	return CatalogEntryResponse{
		ID:       e.ID,
		Type:     string(domain),
		Code:     e.Code,
		Name:     e.Name,
		IsActive: e.IsActive,
	}
}

func CatalogEntriesFromDomain(domain catalog.Domain, entries []catalog.Entry) []CatalogEntryResponse {
	out := make([]CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, CatalogEntryFromDomain(domain, e))
	}
	return out
}

type SearchMatchResponse struct {
	Entry CatalogEntryResponse `json:"entry"`
	Rank  int                  `json:"rank"`
}

func SearchMatchesFromDomain(domain catalog.Domain, matches []services.SearchMatch) []SearchMatchResponse {
	out := make([]SearchMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, SearchMatchResponse{
			Entry: CatalogEntryFromDomain(domain, m.Entry),
			Rank:  m.Rank,
		})
	}
	return out
}
