package telemetry

import (
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing installs the otelgorm plugin so every query becomes a
// child span of the request. Query variables are never recorded; they carry
// phone numbers and emails.
func RegisterDBTracing(db *gorm.DB, enabled bool, logger *zap.Logger) error {
	if !enabled {
		return nil
	}
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	cb := db.Callback()
	if err := cb.Create().After("gorm:create").Register("market:span_details:create", annotateSpan); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("market:span_details:query", annotateSpan); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("market:span_details:update", annotateSpan); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("market:span_details:delete", annotateSpan); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("market:span_details:raw", annotateSpan); err != nil {
		return err
	}

	logger.Info("Database tracing enabled")
	return nil
}

// annotateSpan adds the table and row count to the active query span and
// marks real failures. A missing row is not a failure.
func annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}
