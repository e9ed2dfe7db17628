package aigateway

import (
	"testing"

	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractRow struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

func TestExtractJSONArrayPlain(t *testing.T) {
	var rows []extractRow
	err := ExtractJSONArray(`[{"name":"Rice","stock":5}]`, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rice", rows[0].Name)
}

func TestExtractJSONArrayWrappedInProse(t *testing.T) {
	content := "Here are the extracted products:\n```json\n" +
		`[{"name":"Rice","stock":5},{"name":"Oil","stock":2}]` +
		"\n```\nLet me know if you need more."

	var rows []extractRow
	err := ExtractJSONArray(content, &rows)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExtractJSONArrayNestedBrackets(t *testing.T) {
	content := `Some text [not json] then [{"name":"Rice [premium]","stock":5}] done`

	// The first '[' starts a non-JSON span, so the scan falls through; the
	// overall content is not valid JSON either
	var rows []extractRow
	err := ExtractJSONArray(content, &rows)
	assert.ErrorIs(t, err, apperror.ErrUpstreamParse)
}

func TestExtractJSONArrayInvalid(t *testing.T) {
	var rows []extractRow
	err := ExtractJSONArray("no structured data here", &rows)
	assert.ErrorIs(t, err, apperror.ErrUpstreamParse)
}

func TestExtractJSONArrayEmptyArray(t *testing.T) {
	var rows []extractRow
	err := ExtractJSONArray("The file was empty: []", &rows)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
