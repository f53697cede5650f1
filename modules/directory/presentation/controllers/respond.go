package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/helios-hq/helios/modules/directory/services"
	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/httpapi"
)

func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		_ = httpapi.WriteError(w, svcErr.Status, svcErr.Code, svcErr.Message)
		return
	}
	// Unclassified failures stay out of the response body.
	if logger, ok := composables.TryUseLogger(ctx); ok {
		logger.WithError(err).Error("directory request failed")
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "DIR_INTERNAL", "internal error")
}
