package reporter

import (
	"encoding/json"
	"io"

	"github.com/pagevet/pagevet/internal/models"
)

// WriteJSON marshals the report as an indented JSON document.
func WriteJSON(w io.Writer, report *models.InspectionReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
