// Package export serializes the memo history to CSV text. Delivery
// (file write, share sheet, HTTP body) is the caller's concern.
package export

import (
	"strconv"
	"strings"

	"github.com/t-cool/naturalist/internal/model"
)

// Header is the fixed first line of every export.
const Header = "time,lat,lng,address,memo"

// CSV renders the collection in current order, one double-quoted row per
// record, rows joined by \n. Literal commas inside address and memo are
// replaced by a space before quoting; they are destroyed, not escaped, and
// embedded quote characters are not escaped either. Both are deliberate
// format-compatibility quirks, not defects to fix here.
// An empty collection fails with model.ErrEmptyExport.
func CSV(records model.RecordCollection) (string, error) {
	if len(records) == 0 {
		return "", model.ErrEmptyExport
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, Header)
	for _, r := range records {
		fields := []string{
			r.Time,
			formatCoord(r.Lat),
			formatCoord(r.Lng),
			flattenCommas(r.Address),
			flattenCommas(r.Memo),
		}
		for i, f := range fields {
			fields[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n"), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flattenCommas(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}
