package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/repositories"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var wordExportHeader = []string{"id", "word", "meaning", "level", "added_at"}

// ExportWords renders the whole word bank as csv or xlsx. It returns the
// file bytes and a suggested filename.
func (s *exportService) ExportWords(ctx context.Context, format string) ([]byte, string, error) {
	words, _, err := s.repo.Word().List(ctx, repositories.WordFilters{
		SortBy:    "level",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load words for export: %w", err)
	}

	rows := make([][]string, 0, len(words))
	for _, word := range words {
		meaning := ""
		if word.Meaning != nil {
			meaning = *word.Meaning
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(word.ID), 10),
			word.Text,
			meaning,
			strconv.Itoa(word.Level),
			word.CreatedAt.Format("2006-01-02"),
		})
	}

	s.logger.Info("Exporting words", "format", format, "count", len(rows))
	return s.render(format, "words", wordExportHeader, rows)
}

var statisticsExportHeader = []string{
	"student_id", "total_study_time", "weekly_study_time",
	"accuracy_rate", "today_words_learned", "consecutive_days",
}

// ExportStatistics renders every student's statistics row as csv or xlsx
func (s *exportService) ExportStatistics(ctx context.Context, format string) ([]byte, string, error) {
	records, err := s.repo.Statistics().ListAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load statistics for export: %w", err)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.StudentID,
			strconv.Itoa(record.TotalStudyTime),
			strconv.Itoa(record.WeeklyStudyTime),
			strconv.Itoa(int(math.Round(record.AccuracyRate * 100))),
			strconv.Itoa(record.TodayWordsLearned),
			strconv.Itoa(record.ConsecutiveDays),
		})
	}

	s.logger.Info("Exporting statistics", "format", format, "count", len(rows))
	return s.render(format, "statistics", statisticsExportHeader, rows)
}

func (s *exportService) render(format, name string, header []string, rows [][]string) ([]byte, string, error) {
	switch format {
	case FormatCSV:
		data, err := renderCSV(header, rows)
		if err != nil {
			return nil, "", err
		}
		return data, name + ".csv", nil
	case FormatXLSX:
		data, err := renderXLSX(name, header, rows)
		if err != nil {
			return nil, "", err
		}
		return data, name + ".xlsx", nil
	default:
		return nil, "", ErrUnsupportedFormat
	}
}

func renderCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(sheetName string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
