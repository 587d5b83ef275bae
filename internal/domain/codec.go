package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var knownPlanKeys = map[string]bool{
	"meals": true, "exercises": true, "reminders": true, "meds": true,
	"notes": true, "safety": true, "mode": true, "view": true, "alertsEnabled": true,
}

// DecodePlan parses a persisted plan document and merges it over a fresh
// default, so keys absent from the document keep their defaults. Fields
// are read leniently: scalars of the wrong JSON type are converted to
// text, a collection that is not an array keeps its default, and only
// entries that are not objects are dropped. Items without an id, seeded
// ones included, get one from newID. The result is normalized against
// today. Only a document that is not a JSON object returns an error.
func DecodePlan(raw []byte, today int, newID IDFunc) (*PlanState, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding plan document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decoding plan document: not an object")
	}

	p := NewDefaultPlan(today, func() string { return "" })
	for key, val := range doc {
		switch key {
		case "meals":
			decodeItems(val, today, &p.Meals)
		case "exercises":
			decodeItems(val, today, &p.Exercises)
		case "reminders":
			decodeItems(val, today, &p.Reminders)
		case "meds":
			decodeItems(val, today, &p.Meds)
		case "notes":
			p.Notes = text(val)
		case "safety":
			p.Safety = decodeSafety(val)
		case "mode":
			p.Mode = Mode(text(val))
		case "view":
			p.View = View(text(val))
		case "alertsEnabled":
			p.AlertsEnabled = truthy(val)
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = val
		}
	}
	for _, c := range Collections {
		l, _ := p.list(c)
		for i := range *l {
			if (*l)[i].ID == "" {
				(*l)[i].ID = newID()
			}
		}
	}
	p.Normalize(today)
	return p, nil
}

// EncodePlan serializes p as the persisted document, including any
// pass-through keys.
func EncodePlan(p *PlanState) ([]byte, error) {
	known, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	if len(p.Extra) == 0 {
		return known, nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(known, &doc); err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	for k, v := range p.Extra {
		if !knownPlanKeys[k] {
			doc[k] = v
		}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return out, nil
}

// decodeItems replaces *dst with the items in val. A null or non-array
// value leaves *dst as it was.
func decodeItems(val json.RawMessage, today int, dst *[]Item) {
	var raw []json.RawMessage
	if isNull(val) || json.Unmarshal(val, &raw) != nil {
		return
	}
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		var f map[string]json.RawMessage
		if err := json.Unmarshal(r, &f); err != nil || f == nil {
			continue
		}
		items = append(items, Item{
			ID:     text(f["id"]),
			Title:  text(f["title"]),
			Time:   text(f["time"]),
			Day:    decodeDay(f["day"], today),
			Notes:  text(f["notes"]),
			Dosage: text(f["dosage"]),
			Tone:   text(f["tone"]),
		})
	}
	*dst = items
}

func decodeSafety(val json.RawMessage) Safety {
	var f map[string]json.RawMessage
	if err := json.Unmarshal(val, &f); err != nil {
		return Safety{}
	}
	return Safety{
		PrefFoods:        text(f["prefFoods"]),
		AvoidFoods:       text(f["avoidFoods"]),
		MobilityNotes:    text(f["mobilityNotes"]),
		EmergencyContact: text(f["emergencyContact"]),
	}
}

// text reads a JSON scalar as a string. Numbers and booleans keep their
// literal spelling; null, objects and arrays read as empty.
func text(val json.RawMessage) string {
	if isNull(val) {
		return ""
	}
	var s string
	if err := json.Unmarshal(val, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(val, &v); err != nil {
		return ""
	}
	switch v.(type) {
	case float64, bool:
		return string(bytes.TrimSpace(val))
	}
	return ""
}

// decodeDay reads a day slot written either as a number or a numeric
// string. Anything else means the day was never set.
func decodeDay(val json.RawMessage, today int) int {
	if isNull(val) {
		return today
	}
	var n json.Number
	if err := json.Unmarshal(val, &n); err != nil {
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return today
		}
		n = json.Number(s)
	}
	d, err := strconv.Atoi(n.String())
	if err != nil || !ValidDay(d) {
		return today
	}
	return d
}

// truthy coerces an arbitrary JSON value to a bool the way a loosely typed
// writer would have meant it.
func truthy(val json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(val, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case nil:
		return false
	default:
		return true
	}
}

func isNull(val json.RawMessage) bool {
	trimmed := bytes.TrimSpace(val)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
