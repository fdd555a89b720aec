package cli

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var errMissingKey = errors.New("missing key")

// parseFile reads every value of a seed file and hands it to onEachValue.
// the format is picked from the file extension, unknown extensions are read one value per line.
func parseFile(path string, key string, onEachValue func(value string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = parseCsv(file, ',', key, onEachValue)
	case ".tsv":
		err = parseCsv(file, '\t', key, onEachValue)
	case ".json":
		err = parseJson(file, key, onEachValue)
	case ".yaml", ".yml":
		err = parseYaml(file, key, onEachValue)
	default:
		err = parseLines(file, onEachValue)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func parseCsv(r io.Reader, separator rune, key string, onEachValue func(value string) error) error {
	reader := csv.NewReader(r)
	reader.Comma = separator
	reader.Comment = '#'

	// the first line is the header
	headers, err := reader.Read()
	if err != nil {
		return err
	}

	column := -1
	for i, header := range headers {
		if strings.TrimSpace(header) == key {
			column = i
			break
		}
	}
	if column == -1 {
		return fmt.Errorf("%w: no %q column in header %v", errMissingKey, key, headers)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := onEachValue(record[column]); err != nil {
			return err
		}
	}
}

// parseJson streams an array whose elements are strings or objects holding key.
func parseJson(r io.Reader, key string, onEachValue func(value string) error) error {
	decoder := json.NewDecoder(r)

	// Read opening bracket of the array
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected a JSON array, got %v", token)
	}

	for decoder.More() {
		var element any
		if err := decoder.Decode(&element); err != nil {
			return err
		}

		value, err := valueOf(element, key)
		if err != nil {
			return err
		}
		if err := onEachValue(value); err != nil {
			return err
		}
	}

	// Read closing bracket of the array
	_, err = decoder.Token()
	return err
}

// parseYaml reads a sequence whose elements are strings or mappings holding key.
func parseYaml(r io.Reader, key string, onEachValue func(value string) error) error {
	var elements []any
	if err := yaml.NewDecoder(r).Decode(&elements); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for _, element := range elements {
		value, err := valueOf(element, key)
		if err != nil {
			return err
		}
		if err := onEachValue(value); err != nil {
			return err
		}
	}
	return nil
}

// parseLines reads one value per line, blank lines and lines starting with # are skipped.
func parseLines(r io.Reader, onEachValue func(value string) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := onEachValue(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func valueOf(element any, key string) (string, error) {
	switch e := element.(type) {
	case string:
		return e, nil
	case map[string]any:
		value, found := e[key]
		if !found {
			return "", fmt.Errorf("%w: no %q field in %v", errMissingKey, key, e)
		}
		return fmt.Sprint(value), nil
	default:
		return "", fmt.Errorf("unsupported element %v (%T)", element, element)
	}
}
