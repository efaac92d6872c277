package profile

type Education struct {
	Degree      string
	Field       string
	Institution string
	Year        string
}

type Experience struct {
	Title       string
	Company     string
	Duration    string
	Description string
}

// Resume is a structured resume as emitted by the record provider.
// Zero-value fields mean the provider found nothing.
type Resume struct {
	Skills     []string
	Education  []Education
	Experience []Experience
}

type Job struct {
	Skills           []string
	Requirements     []string
	Responsibilities []string
}

type field struct {
	key   string
	value string
}

func (e Education) fields() []field {
	return []field{
		{key: "degree", value: e.Degree},
		{key: "field", value: e.Field},
		{key: "institution", value: e.Institution},
		{key: "year", value: e.Year},
	}
}

func (e Experience) fields() []field {
	return []field{
		{key: "title", value: e.Title},
		{key: "company", value: e.Company},
		{key: "duration", value: e.Duration},
		{key: "description", value: e.Description},
	}
}
