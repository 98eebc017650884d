package arrange

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one surviving page in an output document.
type Entry struct {
	Page     int    `json:"page"`
	Rotation int    `json:"rotation,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// String renders the compact form: "3" or "3@90".
func (e Entry) String() string {
	if e.Rotation != 0 {
		return fmt.Sprintf("%d@%d", e.Page, e.Rotation)
	}
	return strconv.Itoa(e.Page)
}

// MarshalJSON encodes entries without a comment in compact string form and
// commented entries as objects.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Comment == "" {
		return json.Marshal(e.String())
	}
	type plain Entry
	return json.Marshal(plain(e))
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var compact string
	if err := json.Unmarshal(data, &compact); err == nil {
		parsed, err := ParseEntry(compact)
		if err != nil {
			return err
		}
		*e = parsed
		return nil
	}
	type plain Entry
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode entry: %w", err)
	}
	*e = Entry(obj)
	return nil
}

// ParseEntry reads the compact "page[@rotation]" form.
func ParseEntry(s string) (Entry, error) {
	pagePart, rotPart, hasRot := strings.Cut(strings.TrimSpace(s), "@")
	page, err := strconv.Atoi(pagePart)
	if err != nil || page < 1 {
		return Entry{}, fmt.Errorf("invalid page in entry %q", s)
	}
	entry := Entry{Page: page}
	if hasRot {
		rot, err := strconv.Atoi(rotPart)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid rotation in entry %q", s)
		}
		entry.Rotation = NormalizeRotation(rot)
	}
	return entry, nil
}

// Directive is the final plan: the source document and the output documents
// built from it, each an ordered list of page entries.
type Directive struct {
	Src  []string  `json:"src"`
	Docs [][]Entry `json:"docs"`
}

// PageCount returns the number of entries across all documents.
func (d Directive) PageCount() int {
	n := 0
	for _, doc := range d.Docs {
		n += len(doc)
	}
	return n
}

// Compact renders the documents as "1,2@90 | 3,4".
func (d Directive) Compact() string {
	docs := make([]string, len(d.Docs))
	for i, doc := range d.Docs {
		parts := make([]string, len(doc))
		for j, e := range doc {
			parts[j] = e.String()
		}
		docs[i] = strings.Join(parts, ",")
	}
	return strings.Join(docs, " | ")
}

// Process flattens the sequence into a Directive and notifies listeners.
// Removed pages are skipped; a split marker starts a new document unless the
// current one is still empty. The result always holds at least one document.
func (c *Collection) Process() Directive {
	docs := make([][]Entry, 0, c.splitCount+1)
	current := make([]Entry, 0, len(c.sequence))

	for _, p := range c.sequence {
		if p.removed {
			continue
		}
		entry := Entry{Page: p.Index, Rotation: p.Rotation(), Comment: p.comment}
		if p.splitBefore && len(current) > 0 {
			docs = append(docs, current)
			current = make([]Entry, 0, len(c.sequence))
		}
		current = append(current, entry)
	}
	docs = append(docs, current)

	directive := Directive{Src: []string{c.source}, Docs: docs}
	for _, fn := range c.processListeners {
		fn(directive)
	}
	return directive
}
