package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"eventnotifier/internal/models/db_models"
	"eventnotifier/pkg/utils"
)

// Record is one element of a dump's top-level "records" array.
type Record map[string]any

type dump struct {
	Records []json.RawMessage `json:"records"`
}

// ErrMissingRecords is returned for JSON files without a "records" array.
var ErrMissingRecords = errors.New(`no top-level "records" array`)

// ReadRecords loads a dump file. Elements that are not JSON objects come back
// as nil records so the caller can count them as skipped.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}

func DecodeRecords(data []byte) ([]Record, error) {
	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if d.Records == nil {
		return nil, ErrMissingRecords
	}

	records := make([]Record, len(d.Records))
	for i, raw := range d.Records {
		var rec Record
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records[i] = rec
	}
	return records, nil
}

// String returns the trimmed text of key. Numbers are rendered verbatim, so
// 20250501 stays "20250501".
func (r Record) String(key string) string {
	if key == "" {
		return ""
	}
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Mapped is a record translated to event columns, before category ids are known.
type Mapped struct {
	Title        string
	Description  string
	Location     string
	StartDate    time.Time
	EndDate      time.Time
	CategoryName string
}

// NormalizeName trims and NFC-normalizes a category name, since dumps
// sometimes carry decomposed Hangul.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Map translates rec using src's field and category rules.
func (s Source) Map(rec Record) (Mapped, error) {
	if rec == nil {
		return Mapped{}, fmt.Errorf("record is not an object")
	}

	m := Mapped{
		Title:       rec.String(s.Fields.Title),
		Description: rec.String(s.Fields.Description),
		Location:    rec.String(s.Fields.Location),
	}
	if m.Title == "" {
		return Mapped{}, fmt.Errorf("missing title (%s)", s.Fields.Title)
	}
	if n := utf8.RuneCountInString(m.Title); n > db_models.TitleMaxLen {
		return Mapped{}, fmt.Errorf("title too long: %d characters", n)
	}
	if n := utf8.RuneCountInString(m.Location); n > db_models.LocationMaxLen {
		return Mapped{}, fmt.Errorf("location too long: %d characters", n)
	}

	start, err := utils.ParseLooseDate(rec.String(s.Fields.StartDate))
	if err != nil {
		return Mapped{}, fmt.Errorf("start date: %w", err)
	}
	end, err := utils.ParseLooseDate(rec.String(s.Fields.EndDate))
	if err != nil {
		return Mapped{}, fmt.Errorf("end date: %w", err)
	}
	if start.After(end) {
		return Mapped{}, fmt.Errorf("start date %s is after end date %s", utils.FormatDate(start), utils.FormatDate(end))
	}
	m.StartDate, m.EndDate = start, end

	m.CategoryName = s.categoryFor(rec)
	if m.CategoryName == "" {
		return Mapped{}, fmt.Errorf("no category for record")
	}
	return m, nil
}

func (s Source) categoryFor(rec Record) string {
	if s.Category != "" {
		return NormalizeName(s.Category)
	}

	raw := NormalizeName(rec.String(s.CategoryField))
	if raw == "" {
		return NormalizeName(s.DefaultCategory)
	}
	lookup := s.categoryLookup
	if lookup == nil {
		lookup, _ = normalizeCategoryMap(s.CategoryMap)
	}
	if to, ok := lookup[raw]; ok {
		return to
	}
	return raw
}

// normalizeCategoryMap keys and values m by their normalized names. Keys are
// visited in sorted order, so when two keys collide the smaller one wins and
// the collision is reported.
func normalizeCategoryMap(m map[string]string) (map[string]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	lookup := make(map[string]string, len(m))
	for _, k := range keys {
		from, to := NormalizeName(k), NormalizeName(m[k])
		if prev, dup := lookup[from]; dup {
			if prev != to && err == nil {
				err = fmt.Errorf("category_map key %q maps to both %q and %q", from, prev, to)
			}
			continue
		}
		lookup[from] = to
	}
	return lookup, err
}
