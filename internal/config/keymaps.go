package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Leads
	AddLead       string `yaml:"add_lead"`
	EditLead      string `yaml:"edit_lead"`
	DeleteLead    string `yaml:"delete_lead"`
	ArchiveLead   string `yaml:"archive_lead"`
	DuplicateLead string `yaml:"duplicate_lead"`

	// Drag (pick up / drop a lead card)
	GrabLead string `yaml:"grab_lead"`
	DropLead string `yaml:"drop_lead"`

	// Reminders
	AddReminder      string `yaml:"add_reminder"`
	CompleteReminder string `yaml:"complete_reminder"`
	DeleteReminder   string `yaml:"delete_reminder"`

	// Navigation
	PrevStage string `yaml:"prev_stage"`
	NextStage string `yaml:"next_stage"`
	PrevLead  string `yaml:"prev_lead"`
	NextLead  string `yaml:"next_lead"`

	// Views
	ToggleAgenda string `yaml:"toggle_agenda"`

	// Other
	Retry    string `yaml:"retry"`
	Logout   string `yaml:"logout"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddLead:       "a",
		EditLead:      "e",
		DeleteLead:    "d",
		ArchiveLead:   "x",
		DuplicateLead: "y",

		GrabLead: " ",
		DropLead: "enter",

		AddReminder:      "r",
		CompleteReminder: "c",
		DeleteReminder:   "d",

		PrevStage: "h",
		NextStage: "l",
		PrevLead:  "k",
		NextLead:  "j",

		ToggleAgenda: "tab",

		Retry:    "R",
		Logout:   "ctrl+o",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills empty bindings with defaults so a partial config file
// stays usable.
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	fields := []struct {
		field *string
		def   string
	}{
		{&k.AddLead, defaults.AddLead},
		{&k.EditLead, defaults.EditLead},
		{&k.DeleteLead, defaults.DeleteLead},
		{&k.ArchiveLead, defaults.ArchiveLead},
		{&k.DuplicateLead, defaults.DuplicateLead},
		{&k.GrabLead, defaults.GrabLead},
		{&k.DropLead, defaults.DropLead},
		{&k.AddReminder, defaults.AddReminder},
		{&k.CompleteReminder, defaults.CompleteReminder},
		{&k.DeleteReminder, defaults.DeleteReminder},
		{&k.PrevStage, defaults.PrevStage},
		{&k.NextStage, defaults.NextStage},
		{&k.PrevLead, defaults.PrevLead},
		{&k.NextLead, defaults.NextLead},
		{&k.ToggleAgenda, defaults.ToggleAgenda},
		{&k.Retry, defaults.Retry},
		{&k.Logout, defaults.Logout},
		{&k.ShowHelp, defaults.ShowHelp},
		{&k.Quit, defaults.Quit},
	}
	for _, f := range fields {
		if *f.field == "" {
			*f.field = f.def
		}
	}
}
