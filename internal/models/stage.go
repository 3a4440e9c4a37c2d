package models

// Stage is a named phase of the sales pipeline. Leads reference a stage by
// its title, so titles must be unique within a configured set.
type Stage struct {
	Title string `json:"title" yaml:"title"`
	Order int    `json:"order" yaml:"order"`
	Color string `json:"color" yaml:"color"`
}

// StageSet is the configured pipeline, used to validate stage references at
// write time.
type StageSet []Stage

// Contains reports whether the set has a stage with the given title.
func (s StageSet) Contains(title string) bool {
	for _, st := range s {
		if st.Title == title {
			return true
		}
	}
	return false
}

// ByTitle returns the stage with the given title, if any.
func (s StageSet) ByTitle(title string) (Stage, bool) {
	for _, st := range s {
		if st.Title == title {
			return st, true
		}
	}
	return Stage{}, false
}
