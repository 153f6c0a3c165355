package services

import (
	"github.com/storeforge/api/internal/catalog"
	"github.com/storeforge/api/internal/domain"
)

// Section list operations are pure: every mutation returns a fresh top-level
// slice and never writes through to the input. Operations that target a
// section id which is no longer present return the input list unchanged,
// since a concurrent save may have removed the section already.

// RenumberSections rewrites Order so it always equals index+1 over the
// current slice. Every mutation below finishes with a renumber pass.
func RenumberSections(sections []domain.SectionInstance) []domain.SectionInstance {
	out := domain.CloneSections(sections)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

// AppendSection adds a new instance of the given type at the end of the list
// with the type's default props and enabled state.
func AppendSection(sections []domain.SectionInstance, def domain.SectionTypeDefinition, newID string) []domain.SectionInstance {
	out := domain.CloneSections(sections)
	out = append(out, domain.SectionInstance{
		ID:      newID,
		Type:    def.Type,
		Enabled: true,
		Props:   def.DefaultProps.Clone(),
	})
	return RenumberSections(out)
}

// RemoveSection deletes the section with the given id and closes the gap.
func RemoveSection(sections []domain.SectionInstance, sectionID string) []domain.SectionInstance {
	idx := indexOfSection(sections, sectionID)
	if idx < 0 {
		return domain.CloneSections(sections)
	}
	out := domain.CloneSections(sections)
	out = append(out[:idx], out[idx+1:]...)
	return RenumberSections(out)
}

// ToggleSection flips the enabled flag of the section with the given id.
// A disabled section keeps its slot and ordering.
func ToggleSection(sections []domain.SectionInstance, sectionID string) []domain.SectionInstance {
	idx := indexOfSection(sections, sectionID)
	if idx < 0 {
		return domain.CloneSections(sections)
	}
	out := domain.CloneSections(sections)
	out[idx].Enabled = !out[idx].Enabled
	return RenumberSections(out)
}

// MoveSection swaps the section with its neighbor in the given direction.
// Moving the first section up or the last section down is a no-op.
func MoveSection(sections []domain.SectionInstance, sectionID string, dir domain.MoveDirection) []domain.SectionInstance {
	idx := indexOfSection(sections, sectionID)
	if idx < 0 {
		return domain.CloneSections(sections)
	}
	target := idx
	switch dir {
	case domain.MoveUp:
		target = idx - 1
	case domain.MoveDown:
		target = idx + 1
	}
	if target < 0 || target >= len(sections) || target == idx {
		return domain.CloneSections(sections)
	}
	out := domain.CloneSections(sections)
	out[idx], out[target] = out[target], out[idx]
	return RenumberSections(out)
}

// UpdateSectionProps merges the patch into the section's props, replacing
// only the keys the patch names. Props absent from the patch are preserved.
func UpdateSectionProps(sections []domain.SectionInstance, sectionID string, patch domain.PropBag) []domain.SectionInstance {
	idx := indexOfSection(sections, sectionID)
	if idx < 0 {
		return domain.CloneSections(sections)
	}
	out := domain.CloneSections(sections)
	out[idx].Props = out[idx].Props.Merge(patch)
	return RenumberSections(out)
}

// FindSection returns the section with the given id, if present.
func FindSection(sections []domain.SectionInstance, sectionID string) (domain.SectionInstance, bool) {
	idx := indexOfSection(sections, sectionID)
	if idx < 0 {
		return domain.SectionInstance{}, false
	}
	return domain.CloneSection(sections[idx]), true
}

// AvailableSectionTypes lists the catalog entries that can still be added to
// a store: types applicable to the store kind and not already present in the
// section list. Each type appears at most once per store.
func AvailableSectionTypes(registry *catalog.Registry, kind domain.StoreKind, sections []domain.SectionInstance) []domain.SectionTypeDefinition {
	present := make(map[string]struct{}, len(sections))
	for _, sec := range sections {
		present[sec.Type] = struct{}{}
	}
	var out []domain.SectionTypeDefinition
	for _, def := range registry.ListForKind(kind) {
		if _, used := present[def.Type]; used {
			continue
		}
		out = append(out, def)
	}
	return out
}

func indexOfSection(sections []domain.SectionInstance, sectionID string) int {
	for i := range sections {
		if sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}
