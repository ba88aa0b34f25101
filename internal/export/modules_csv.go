package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"adviseek/internal/domain"
)

// Module recommendation CSV layout.
// Keep header order EXACT.
var modulesHeader = []string{
	"MODULE_ID",
	"MODULE_CODE",
	"TITLE",
	"INSTITUTION",
	"DESCRIPTION",
}

// WriteModulesCSV writes one row per recommended module.
func WriteModulesCSV(w io.Writer, modules []domain.Module) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(modulesHeader); err != nil {
		return err
	}
	for _, m := range modules {
		if err := cw.Write(toModuleRow(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteModulesCSVFile writes the CSV to path, creating parent directories.
func WriteModulesCSVFile(path string, modules []domain.Module) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "error creating directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", path)
	}
	if err := WriteModulesCSV(f, modules); err != nil {
		f.Close()
		return errors.Wrapf(err, "error writing %s", path)
	}
	return f.Close()
}

func toModuleRow(m domain.Module) []string {
	return []string{
		strconv.FormatInt(m.ID, 10), // MODULE_ID
		strings.TrimSpace(m.Code),   // MODULE_CODE
		flatten(m.Title),            // TITLE
		string(m.Institution),       // INSTITUTION
		flatten(m.Description),      // DESCRIPTION
	}
}

// flatten keeps each record on one line.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
