package domain

// Clone returns a deep copy of the prop bag. Template defaults and live store
// props must never alias; editing one store's section would otherwise corrupt
// the template or a sibling store seeded from it.
func (p PropBag) Clone() PropBag {
	if p == nil {
		return nil
	}
	out := make(PropBag, len(p))
	for key, value := range p {
		out[key] = cloneValue(value)
	}
	return out
}

// Merge returns a copy of the bag with the patch shallow-merged on top.
// Keys absent from the patch are preserved; the receiver is not mutated.
func (p PropBag) Merge(patch PropBag) PropBag {
	merged := p.Clone()
	if merged == nil {
		merged = make(PropBag, len(patch))
	}
	for key, value := range patch {
		merged[key] = cloneValue(value)
	}
	return merged
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = cloneValue(v)
		}
		return out
	case PropBag:
		return map[string]any(typed.Clone())
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = cloneValue(v)
		}
		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)
		return out
	default:
		return typed
	}
}

// CloneRecords returns a deep copy of an array-of-record prop value.
func CloneRecords(records []any) []any {
	if records == nil {
		return nil
	}
	out, _ := cloneValue(records).([]any)
	return out
}

// CloneSection returns a deep copy of the section instance.
func CloneSection(section SectionInstance) SectionInstance {
	section.Props = section.Props.Clone()
	return section
}

// CloneSections returns a deep copy of the section list.
func CloneSections(sections []SectionInstance) []SectionInstance {
	if sections == nil {
		return nil
	}
	out := make([]SectionInstance, len(sections))
	for i, section := range sections {
		out[i] = CloneSection(section)
	}
	return out
}
