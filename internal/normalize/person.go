package normalize

// Person is the record of a cast or crew member.
type Person struct {
	PersonID           string `json:"person_id"`
	Name               string `json:"name"`
	Birthday           string `json:"birthday"`
	Biography          string `json:"biography"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}

// FormatPerson builds the record of a person.
func FormatPerson(item any) *Person {
	return safely("person", func() *Person {
		r := RecordOf(item)
		return &Person{
			PersonID:           idString(r),
			Name:               text(r, "name"),
			Birthday:           text(r, "birthday"),
			Biography:          text(r, "biography"),
			ProfilePath:        profileURL(r, "profile_path"),
			KnownForDepartment: text(r, "known_for_department"),
		}
	})
}
