package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
)

// Result is the outcome of one query.
// for add and remove it reports whether the value is stored afterwards.
type Result struct {
	Operation string `json:"operation"`
	Value     string `json:"value"`
	Result    bool   `json:"result"`
}

type Writer interface {
	Write(w io.Writer, results []Result) error
	Ext() string
}

func newWriter(format string) Writer {
	switch format {
	case "json":
		return JsonWriter{}
	case "tsv":
		return CsvWriter{isTSV: true}
	default:
		return CsvWriter{}
	}
}

// writeResults writes the results to <directory>/results.<ext> and returns the file path.
func writeResults(writer Writer, directory string, results []Result) (string, error) {
	filePath := filepath.Join(directory, "results"+writer.Ext())
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writer.Write(file, results); err != nil {
		return "", err
	}
	return filePath, file.Close()
}

type JsonWriter struct{}

func (JsonWriter) Ext() string { return ".json" }

func (JsonWriter) Write(w io.Writer, results []Result) error {
	encoder := json.NewEncoder(w)

	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, result := range results {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if err := encoder.Encode(result); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]\n")
	return err
}

type CsvWriter struct {
	isTSV bool
}

func (w CsvWriter) Ext() string {
	if w.isTSV {
		return ".tsv"
	}
	return ".csv"
}

func (w CsvWriter) Write(out io.Writer, results []Result) error {
	writer := csv.NewWriter(out)
	if w.isTSV {
		writer.Comma = '\t'
	}

	if err := writer.Write([]string{"operation", "value", "result"}); err != nil {
		return err
	}
	for _, result := range results {
		record := []string{result.Operation, result.Value, strconv.FormatBool(result.Result)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing %s %q: %w", result.Operation, result.Value, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
