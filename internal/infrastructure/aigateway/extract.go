package aigateway

import (
	"encoding/json"
	"strings"

	"github.com/arjunms/maninventory-api/pkg/apperror"
)

// ExtractJSONArray pulls a JSON array out of a model reply and unmarshals it
// into target. Models wrap their output in prose or markdown fences more
// often than not, so this scans from the first '[' to the last ']' before
// falling back to parsing the whole content.
func ExtractJSONArray(content string, target interface{}) error {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")

	if start >= 0 && end > start {
		candidate := content[start : end+1]
		if err := json.Unmarshal([]byte(candidate), target); err == nil {
			return nil
		}
	}

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), target); err != nil {
		return apperror.ErrUpstreamParse
	}
	return nil
}
