package services

import (
	"fmt"

	"github.com/storeforge/api/internal/domain"
)

// Array-of-record props (testimonials, FAQs, badges, and the like) are edited
// one record at a time. Like the section list operations, every function here
// returns a fresh slice and never writes through to the input; the result is
// written back into the section via a single-key props patch.

// RecordsForSetting extracts the record slice a setting edits from the props
// bag. A missing key or a non-array value yields the kind's empty value, so
// persisted payloads that predate the setting still edit cleanly.
func RecordsForSetting(props domain.PropBag, setting domain.SettingDescriptor) []any {
	if records, ok := props[setting.Name].([]any); ok {
		return domain.CloneRecords(records)
	}
	empty, _ := setting.Kind.EmptyValue().([]any)
	return empty
}

// AppendRecord adds a blank record of the setting's kind at the end.
func AppendRecord(records []any, setting domain.SettingDescriptor) []any {
	out := domain.CloneRecords(records)
	return append(out, setting.Kind.EmptyRecord())
}

// RemoveRecord deletes the record at the given index.
func RemoveRecord(records []any, index int) ([]any, error) {
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: record index %d is out of range", ErrInvalidInput, index)
	}
	out := domain.CloneRecords(records)
	return append(out[:index], out[index+1:]...), nil
}

// MoveRecord relocates the record at from so it ends up at index to.
func MoveRecord(records []any, from, to int) ([]any, error) {
	if from < 0 || from >= len(records) {
		return nil, fmt.Errorf("%w: record index %d is out of range", ErrInvalidInput, from)
	}
	if to < 0 || to >= len(records) {
		return nil, fmt.Errorf("%w: record index %d is out of range", ErrInvalidInput, to)
	}
	out := domain.CloneRecords(records)
	if from == to {
		return out, nil
	}
	record := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]any{record}, out[to:]...)...)
	return out, nil
}

// SetRecordField replaces one field of the record at the given index,
// leaving every other record untouched. An empty field name replaces the
// record wholesale, which is how plain string list entries are edited.
func SetRecordField(records []any, index int, field string, value any) ([]any, error) {
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: record index %d is out of range", ErrInvalidInput, index)
	}
	out := domain.CloneRecords(records)
	if field == "" {
		out[index] = value
		return out, nil
	}
	record, ok := out[index].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: record %d has no named fields", ErrInvalidInput, index)
	}
	record[field] = value
	return out, nil
}
