package predictionexport

import (
	"fmt"
	"io"
	"time"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/xuri/excelize/v2"
)

const (
	PredictionsSheet = "Predictions"
	SummarySheet     = "By Match"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var predictionHeader = []any{"ID", "User", "User ID", "Email", "Match", "Match Date", "Home", "Away", "Submitted At"}

var summaryHeader = []any{"Match", "Match Date", "Predictions", "Home Wins", "Draws", "Away Wins"}

// WriteXLSX renders predictions as a workbook with one row per prediction and a
// per-match summary sheet.
func WriteXLSX(w io.Writer, preds []predictiondomain.Prediction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PredictionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, PredictionsSheet, 1, predictionHeader); err != nil {
		return err
	}
	for i, p := range preds {
		var userID any
		if p.UserID != 0 {
			userID = p.UserID
		}
		var submitted string
		if p.Timestamp != nil {
			submitted = p.Timestamp.UTC().Format(time.RFC3339)
		}
		row := []any{p.ID, p.User, userID, p.Email, p.Match, p.Date, p.Prediction.Home, p.Prediction.Away, submitted}
		if err := writeRow(f, PredictionsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	for i, g := range predictiondomain.GroupByMatch(preds) {
		var home, draw, away int
		for _, p := range g.Predictions {
			switch {
			case p.Prediction.Home > p.Prediction.Away:
				home++
			case p.Prediction.Home < p.Prediction.Away:
				away++
			default:
				draw++
			}
		}
		row := []any{g.Match, g.Date, len(g.Predictions), home, draw, away}
		if err := writeRow(f, SummarySheet, i+2, row); err != nil {
			return err
		}
	}

	for _, sheet := range []string{PredictionsSheet, SummarySheet} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("style header of %s: %w", sheet, err)
		}
		if err := f.SetColWidth(sheet, "A", "I", 20); err != nil {
			return fmt.Errorf("set column width of %s: %w", sheet, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
