package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"recruiter-pipeline-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"ID", "CANDIDATE NAME", "ROLE", "YEARS OF EXPERIENCE", "STATUS",
	"RESUME LINK", "NOTES", "CREATED AT", "LAST UPDATED",
}

func exportRow(app domain.Application) []interface{} {
	return []interface{}{
		app.ID,
		app.CandidateName,
		app.Role,
		app.YearsOfExperience,
		app.Status.Label(),
		app.ResumeLink,
		app.Notes,
		app.CreatedAt.UTC().Format(time.RFC3339),
		app.LastUpdated.UTC().Format(time.RFC3339),
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf("applications_%s.%s", time.Now().UTC().Format("20060102_150405"), ext)
}

// exportExcel writes one styled sheet with a header row
func exportExcel(apps []domain.Application) (*domain.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for i, app := range apps {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(app)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return &domain.ExportFile{
		Filename:    exportFilename("xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}

func exportCSV(apps []domain.Application) (*domain.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, app := range apps {
		row := exportRow(app)
		record := make([]string, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case float64:
				record[i] = strconv.FormatFloat(val, 'f', -1, 64)
			default:
				record[i] = fmt.Sprint(val)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &domain.ExportFile{
		Filename:    exportFilename("csv"),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}
