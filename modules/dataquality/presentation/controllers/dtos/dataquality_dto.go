package dtos

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/helios-hq/helios/pkg/constants"
	"github.com/helios-hq/helios/pkg/serrors"
)

type ResolveOrphanRequest struct {
	EntityType    string     `json:"entityType" validate:"required,oneof=department location cost_center"`
	OrphanedValue string     `json:"orphanedValue" validate:"required"`
	Resolution    string     `json:"resolution" validate:"required,oneof=map create ignore"`
	TargetID      *uuid.UUID `json:"targetId"`
}

func (d *ResolveOrphanRequest) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	return validateStruct(d)
}

type AutoImportRequest struct {
	EntityType string `json:"entityType" validate:"required,oneof=departments locations cost_centers"`
}

func (d *AutoImportRequest) Ok(_ context.Context) (serrors.ValidationErrors, bool) {
	return validateStruct(d)
}

func validateStruct(d any) (serrors.ValidationErrors, bool) {
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
