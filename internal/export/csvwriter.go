package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVWriter provides a buffered CSV writer for one result table.
type CSVWriter struct {
	file     *os.File
	buffer   *bufio.Writer
	writer   *csv.Writer
	rowCount int64
	closed   bool
}

// CSVWriterConfig holds configuration for creating a CSV writer
type CSVWriterConfig struct {
	// Directory where the file will be created
	OutputDir string
	// Filename without extension (e.g., "companies")
	Filename string
	// Column headers
	Headers []string
	// Buffer size in bytes (default: 64KB)
	BufferSize int
}

// NewCSVWriter creates the file and writes the header row.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}

	path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	buffer := bufio.NewWriterSize(file, bufSize)
	cw := &CSVWriter{
		file:   file,
		buffer: buffer,
		writer: csv.NewWriter(buffer),
	}

	if len(cfg.Headers) > 0 {
		if err := cw.writer.Write(cfg.Headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return cw, nil
}

// WriteRow writes a single row to the CSV file.
func (w *CSVWriter) WriteRow(row []string) error {
	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.rowCount++
	return nil
}

// Close flushes remaining data and closes the file.
// Always call Close when done writing.
func (w *CSVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("csv flush error: %w", err)
	}

	if err := w.buffer.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("buffer flush error: %w", err)
	}

	return w.file.Close()
}

// RowCount returns the number of data rows written (excludes header).
func (w *CSVWriter) RowCount() int64 {
	return w.rowCount
}

// Path returns the full path to the output file
func (w *CSVWriter) Path() string {
	return w.file.Name()
}

// WriteCSV writes one CSV file per sheet into dir and returns their paths.
// onSheet, if not nil, is called after each file is closed.
func WriteCSV(dir string, r *Report, onSheet func(name string)) ([]string, error) {
	var paths []string
	for _, sheet := range r.Sheets() {
		w, err := NewCSVWriter(CSVWriterConfig{
			OutputDir: dir,
			Filename:  csvFilename(sheet.Name),
			Headers:   sheet.Headers,
		})
		if err != nil {
			return paths, err
		}

		for _, row := range sheet.StringRows() {
			if err := w.WriteRow(row); err != nil {
				w.Close()
				return paths, err
			}
		}
		if err := w.Close(); err != nil {
			return paths, err
		}

		paths = append(paths, w.Path())
		if onSheet != nil {
			onSheet(sheet.Name)
		}
	}
	return paths, nil
}

// csvFilename turns a sheet name into a file name ("Above average" -> "above_average")
func csvFilename(sheet string) string {
	return strings.ReplaceAll(strings.ToLower(sheet), " ", "_")
}
