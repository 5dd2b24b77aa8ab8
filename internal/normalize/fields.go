package normalize

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	// NotAvailable is the sentinel for unknown text.
	NotAvailable = "N/A"

	imageBaseURL  = "https://image.tmdb.org/t/p/"
	posterSize    = "original"
	backdropSize  = "w780"
	profileSize   = "w185"
	tmdbWebURL    = "https://www.themoviedb.org/"
	youtubeURL    = "https://www.youtube.com/watch?v="
	maxListNames  = 10
	fallbackDate  = "1900-01-01"
	defaultJoiner = ", "
)

// str returns the text of field. Blank text counts as missing.
func str(r Record, field string) (string, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return "", false
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case json.Number:
		s = val.String()
	case fmt.Stringer:
		s = val.String()
	default:
		if n, ok := toFloat(v); ok {
			s = formatNumber(n)
		} else {
			return "", false
		}
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// text returns the text of field or NotAvailable.
func text(r Record, field string) string {
	if s, ok := str(r, field); ok {
		return s
	}
	return NotAvailable
}

// firstText returns the text of the first present field or NotAvailable.
func firstText(r Record, fields ...string) string {
	for _, f := range fields {
		if s, ok := str(r, f); ok {
			return s
		}
	}
	return NotAvailable
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func num(r Record, field string) (float64, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// number returns the number in field or 0.
func number(r Record, field string) float64 {
	f, _ := num(r, field)
	return f
}

// integer returns the number in field truncated to an integer or 0.
func integer(r Record, field string) int64 {
	f, _ := num(r, field)
	return int64(f)
}

// formatNumber renders integral numbers without a fraction.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatRating renders a float the way ratings are published, e.g. "8.4" or "7.0".
func formatRating(r Record, field string) string {
	f, ok := num(r, field)
	if !ok {
		return NotAvailable
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// idString returns the id field as text or NotAvailable.
func idString(r Record) string {
	return text(r, "id")
}

// records returns the list in field as records. Lists of maps and lists of structs are both accepted.
func records(r Record, field string) []Record {
	v, ok := r.Lookup(field)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []any:
		return lo.Map(list, func(item any, _ int) Record { return RecordOf(item) })
	case []map[string]any:
		return lo.Map(list, func(item map[string]any, _ int) Record { return MapRecord(item) })
	case []Record:
		return list
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]Record, 0, rv.Len())
	for i := range rv.Len() {
		out = append(out, RecordOf(rv.Index(i).Interface()))
	}
	return out
}

// stringList returns the list in field as text, skipping blank entries.
func stringList(r Record, field string) []string {
	v, ok := r.Lookup(field)
	if !ok {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		item := rv.Index(i).Interface()
		switch val := item.(type) {
		case string:
			if val != "" {
				out = append(out, val)
			}
		default:
			if f, ok := toFloat(val); ok {
				out = append(out, formatNumber(f))
			}
		}
	}
	return out
}

// nested returns the object in field as a record.
func nested(r Record, field string) (Record, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return nil, false
	}
	return RecordOf(v), true
}

// joinNames joins the key of the first ten entries of the list in field.
// Entries without the key are skipped, an empty result yields NotAvailable.
func joinNames(r Record, field, key string) string {
	return joinRecords(records(r, field), key)
}

func joinRecords(list []Record, key string) string {
	names := lo.FilterMap(lo.Slice(list, 0, maxListNames), func(item Record, _ int) (string, bool) {
		return str(item, key)
	})
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, defaultJoiner)
}

// year returns the part before the first "-" of release_date, else of first_air_date.
func year(r Record) string {
	for _, f := range []string{"release_date", "first_air_date"} {
		if d, ok := str(r, f); ok {
			y, _, _ := strings.Cut(strings.TrimSpace(d), "-")
			return y
		}
	}
	return NotAvailable
}

func image(size string, r Record, field string) string {
	p, ok := str(r, field)
	if !ok {
		return ""
	}
	return imageBaseURL + size + p
}

func posterURL(r Record, field string) string   { return image(posterSize, r, field) }
func backdropURL(r Record, field string) string { return image(backdropSize, r, field) }
func profileURL(r Record, field string) string  { return image(profileSize, r, field) }

func webURL(mediaType, id string) string {
	if id == NotAvailable {
		return NotAvailable
	}
	return tmdbWebURL + mediaType + "/" + id
}

func runtimeText(minutes float64) string {
	if minutes <= 0 {
		return NotAvailable
	}
	return formatNumber(minutes) + " min"
}
