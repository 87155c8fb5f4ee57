package attackcsv

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, s Sheet) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(collectRows(s))
}
