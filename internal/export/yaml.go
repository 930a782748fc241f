package export

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/AryaMundra/VeriWise/internal/models"
)

// YAMLExporter exports sessions as YAML.
type YAMLExporter struct{}

// Export round-trips the session through its JSON form so raw response
// payloads come out as nested YAML mappings rather than binary blobs.
func (e *YAMLExporter) Export(session *models.Session, w io.Writer) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(doc)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
