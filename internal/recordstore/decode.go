package recordstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// supportedExt lists the record file extensions.
var supportedExt = map[string]struct{}{
	".json": {},
	".yaml": {},
	".yml":  {},
}

func isRecordFile(name string) bool {
	_, ok := supportedExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

// readDocument reads a JSON or YAML file into generic values.
func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseDocument(data, filepath.Ext(path))
}

// parseDocument decodes raw bytes by extension.
func parseDocument(data []byte, ext string) (any, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
		return toJSONCompatible(doc), nil
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
		return doc, nil
	}
}

// decodeInto re-encodes a validated generic document into a typed record.
// Fields already set on out act as defaults for fields absent in doc.
func decodeInto(doc any, out any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
