package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ------------------------------
// Backend payloads
// ------------------------------

// Payloads are kept as the JSON objects the backend sent. Unknown fields
// survive and a drifted field type never fails a 2xx decode; the accessors
// below return zero values for anything missing or mistyped.

// LeaderboardRow is one ranked user: user_id, name, points.
type LeaderboardRow map[string]any

// UserID returns user_id.
func (r LeaderboardRow) UserID() string { return text(r, "user_id") }

// Name returns name.
func (r LeaderboardRow) Name() string { return text(r, "name") }

// Points returns points. Numeric strings are parsed.
func (r LeaderboardRow) Points() float64 { return number(r, "points") }

// Me identifies the user behind the current session: user_id, name.
type Me map[string]any

// UserID returns user_id.
func (m Me) UserID() string { return text(m, "user_id") }

// Name returns name.
func (m Me) Name() string { return text(m, "name") }

// Project is an Asana project visible to the session user: gid, name.
type Project map[string]any

// Gid returns gid.
func (p Project) Gid() string { return text(p, "gid") }

// Name returns name.
func (p Project) Name() string { return text(p, "name") }

// Quest is a backend-tracked quest.
type Quest map[string]any

func (q Quest) ID() string         { return text(q, "id") }
func (q Quest) Name() string       { return text(q, "name") }
func (q Quest) Difficulty() string { return text(q, "difficulty") }
func (q Quest) Completed() bool    { return flag(q, "completed") }

// CompletedBy returns the completing user id; "" while the quest is open.
func (q Quest) CompletedBy() string { return text(q, "completed_by") }

// Task is an Asana task exactly as the backend relays it. The field set is
// owned by the backend, so it stays a raw JSON object.
type Task map[string]any

// CustomField is the subset of an Asana custom field the UI reads.
type CustomField struct {
	Gid          string
	Name         string
	Type         string
	DisplayValue string
}

// Gid returns the task gid or "".
func (t Task) Gid() string { return text(t, "gid") }

// Name returns the task name or "".
func (t Task) Name() string { return text(t, "name") }

// Completed reports the completed flag; absent means false.
func (t Task) Completed() bool { return flag(t, "completed") }

// CustomFields returns the task's custom fields in backend order. Entries that
// are not JSON objects are skipped.
func (t Task) CustomFields() []CustomField {
	raw, _ := t["custom_fields"].([]any)
	out := make([]CustomField, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, CustomField{
			Gid:          text(m, "gid"),
			Name:         text(m, "name"),
			Type:         text(m, "type"),
			DisplayValue: text(m, "display_value"),
		})
	}
	return out
}

// CustomField returns the display value of the first custom field called name.
// An empty display value counts as missing.
func (t Task) CustomField(name string) (string, bool) {
	for _, cf := range t.CustomFields() {
		if cf.Name == name && cf.DisplayValue != "" {
			return cf.DisplayValue, true
		}
	}
	return "", false
}

// text renders strings as-is and JSON numbers and booleans in their
// literal form, so an id sent as 7 still reads "7".
func text(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func number(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func flag(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
