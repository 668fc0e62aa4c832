package entities

import "strings"

// Vocabulary is the fixed, versioned set of accommodation labels the system
// knows about. It is built once at startup from the model artifact and never
// mutated during serving. Any label outside the vocabulary is dropped before
// it can reach a result, which is the guard against untrusted generative
// output introducing invalid state.
type Vocabulary struct {
	version string
	labels  []string
	index   map[string]int
}

// NewVocabulary builds a vocabulary from an ordered label list. Label order
// is significant: it matches the predictor's output order.
func NewVocabulary(version string, labels []string) *Vocabulary {
	v := &Vocabulary{
		version: version,
		labels:  make([]string, 0, len(labels)),
		index:   make(map[string]int, len(labels)),
	}
	for _, label := range labels {
		canonical := strings.TrimSpace(label)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if _, ok := v.index[key]; ok {
			continue
		}
		v.index[key] = len(v.labels)
		v.labels = append(v.labels, canonical)
	}
	return v
}

// Version returns the vocabulary version string.
func (v *Vocabulary) Version() string { return v.version }

// Len returns the number of labels.
func (v *Vocabulary) Len() int { return len(v.labels) }

// Labels returns a copy of the ordered label list.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

// Label returns the label at the given index.
func (v *Vocabulary) Label(i int) string { return v.labels[i] }

// Contains reports whether the label is a vocabulary member. Matching is
// case-insensitive and ignores surrounding whitespace.
func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.index[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// Canonical returns the canonical form of a label and whether it is a member.
func (v *Vocabulary) Canonical(label string) (string, bool) {
	i, ok := v.index[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", false
	}
	return v.labels[i], true
}

// Filter returns the canonical forms of the labels that are vocabulary
// members, deduplicated, preserving first-seen order. Unknown labels are
// silently dropped.
func (v *Vocabulary) Filter(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		canonical, ok := v.Canonical(label)
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}
