package report

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

const (
	sheetSummary     = "Summary"
	sheetAssessments = "Assessments"
	sheetLocations   = "Locations"

	// Tope de evaluaciones exportadas por workbook.
	exportLimit = 500
)

// Exporter arma un workbook .xlsx con el historial clínico y de ubicación
// de un usuario. Una hoja por tipo de registro más un resumen por etapa.
type Exporter struct {
	logger      *zap.Logger
	assessments repository.AssessmentRepository
	locations   repository.LocationRepository
}

func NewExporter(logger *zap.Logger, assessments repository.AssessmentRepository, locations repository.LocationRepository) *Exporter {
	return &Exporter{
		logger:      logger,
		assessments: assessments,
		locations:   locations,
	}
}

// Write genera el workbook del usuario y lo escribe en w.
func (e *Exporter) Write(ctx context.Context, userID string, w io.Writer) error {
	records, err := e.assessments.ListByUserID(ctx, userID, exportLimit)
	if err != nil {
		return fmt.Errorf("list assessments: %w", err)
	}
	history, err := e.locations.ListHistory(ctx, userID)
	if err != nil {
		return fmt.Errorf("list location history: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, records); err != nil {
		return err
	}
	if err := writeAssessmentSheet(f, records); err != nil {
		return err
	}
	if err := writeLocationSheet(f, history); err != nil {
		return err
	}

	// La hoja por defecto de excelize sobra una vez creadas las propias.
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	e.logger.Info("report exported",
		zap.String("user_id", userID),
		zap.Int("assessments", len(records)),
		zap.Int("location_samples", len(history)),
	)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, records []domain.AssessmentRecord) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheetSummary, err)
	}
	if err := f.SetSheetRow(sheetSummary, "A1", &[]interface{}{"Stage", "Assessments", "Avg Confidence"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	byStage := map[string]int{}
	confSum := map[string]float64{}
	for _, r := range records {
		byStage[r.PrimaryStage]++
		confSum[r.PrimaryStage] += r.Confidence
	}
	stages := make([]string, 0, len(byStage))
	for s := range byStage {
		stages = append(stages, s)
	}
	sort.Strings(stages)

	for i, stage := range stages {
		n := byStage[stage]
		row := []interface{}{stage, n, confSum[stage] / float64(n)}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write row %s: %w", cell, err)
		}
	}
	return nil
}

func writeAssessmentSheet(f *excelize.File, records []domain.AssessmentRecord) error {
	if _, err := f.NewSheet(sheetAssessments); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheetAssessments, err)
	}
	header := []interface{}{"ID", "Session", "Stage", "Score", "Confidence", "Severity", "Risk", "Created At"}
	if err := f.SetSheetRow(sheetAssessments, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		row := []interface{}{
			r.ID,
			r.SessionID,
			r.PrimaryStage,
			r.Score,
			r.Confidence,
			r.Severity,
			r.RiskLevel,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetAssessments, cell, &row); err != nil {
			return fmt.Errorf("write row %s: %w", cell, err)
		}
	}
	return nil
}

func writeLocationSheet(f *excelize.File, history []domain.GeoSample) error {
	if _, err := f.NewSheet(sheetLocations); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheetLocations, err)
	}
	header := []interface{}{"Latitude", "Longitude", "Accuracy", "Timestamp"}
	if err := f.SetSheetRow(sheetLocations, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, s := range history {
		row := []interface{}{s.Latitude, s.Longitude, s.Accuracy, s.Timestamp}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetLocations, cell, &row); err != nil {
			return fmt.Errorf("write row %s: %w", cell, err)
		}
	}
	return nil
}
