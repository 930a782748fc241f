package export

import (
	"encoding/json"
	"io"

	"github.com/AryaMundra/VeriWise/internal/models"
)

// JSONExporter exports sessions as pretty-printed JSON.
type JSONExporter struct{}

func (e *JSONExporter) Export(session *models.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(session)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
