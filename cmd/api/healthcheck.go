package api

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type healthReport struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// @Summary		Healthcheck
// @Description	Reports the build and whether the database answers; 503 while it does not
// @Tags			system
// @Produce		json
// @Success		200	{object}	SwaggerHealthResponse
// @Failure		503	{object}	SwaggerHealthResponse
// @Router			/healthcheck [get]
func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("healthcheck.handler.tracer").Start(r.Context(), "healthcheck.handler.span")
	defer span.End()

	report := healthReport{
		Status:      "available",
		Database:    "ok",
		Environment: app.config.env,
		Version:     Version,
	}
	status := http.StatusOK
	if err := app.models.Ping(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, otelDBErr)
		app.logError(r, err)
		report.Status, report.Database = "unavailable", "unreachable"
		status = http.StatusServiceUnavailable
	}

	if err := app.writeJson(w, status, envelope{"health": report}, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
