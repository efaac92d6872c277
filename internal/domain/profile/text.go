package profile

import "strings"

// Document flattens the resume into a single text used for requirement
// matching: "Skills: ...", "Education: ...", "Experience: ..." sections joined
// by a space. A section is present whenever its list is non-empty, even if
// every record in it is blank; only a resume with no entries at all yields "".
func (r Resume) Document() string {
	parts := make([]string, 0, 3)

	if len(r.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(r.Skills, ", "))
	}

	if len(r.Education) > 0 {
		edu := make([]string, 0, len(r.Education))
		for _, e := range r.Education {
			edu = append(edu, joinFields(e.fields()))
		}
		parts = append(parts, "Education: "+strings.Join(edu, "; "))
	}

	if len(r.Experience) > 0 {
		exp := make([]string, 0, len(r.Experience))
		for _, e := range r.Experience {
			exp = append(exp, joinFields(e.fields()))
		}
		parts = append(parts, "Experience: "+strings.Join(exp, "; "))
	}

	return strings.Join(parts, " ")
}

// ExperienceText concatenates description then title of every record, in
// order, skipping empty values.
func ExperienceText(records []Experience) string {
	texts := make([]string, 0, len(records)*2)
	for _, e := range records {
		if d := strings.TrimSpace(e.Description); d != "" {
			texts = append(texts, e.Description)
		}
		if t := strings.TrimSpace(e.Title); t != "" {
			texts = append(texts, e.Title)
		}
	}
	return strings.Join(texts, " ")
}

func joinFields(fields []field) string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		out = append(out, f.key+": "+f.value)
	}
	return strings.Join(out, ", ")
}
