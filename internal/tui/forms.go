package tui

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/huh/v2"

	"github.com/venda-crm/venda/internal/models"
	leadstore "github.com/venda-crm/venda/internal/store/lead"
	reminderstore "github.com/venda-crm/venda/internal/store/reminder"
)

const dateTimeLayout = "2006-01-02 15:04"

// loginValues backs the login form.
type loginValues struct {
	Email    string
	Password string
}

func newLoginForm(v *loginValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("you@company.com").
			Value(&v.Email),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&v.Password),
	))
}

// leadFormValues backs the lead create/edit form. Value is kept as text and
// parsed on submit.
type leadFormValues struct {
	Name  string
	Email string
	Phone string
	Value string
	Date  string
	Stage string
}

func newLeadFormValues(l *models.Lead, defaultStage string) *leadFormValues {
	if l == nil {
		return &leadFormValues{
			Date:  now().Format("2006-01-02"),
			Stage: defaultStage,
		}
	}
	return &leadFormValues{
		Name:  l.Name,
		Email: l.Email,
		Phone: l.Phone,
		Value: strconv.FormatFloat(l.EstimatedValue, 'f', -1, 64),
		Date:  l.Date,
		Stage: l.Column,
	}
}

func newLeadForm(v *leadFormValues, stages models.StageSet) *huh.Form {
	stageOpts := make([]huh.Option[string], len(stages))
	for i, st := range stages {
		stageOpts[i] = huh.NewOption(st.Title, st.Title)
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Name").
			Placeholder("Lead name...").
			Value(&v.Name).
			Validate(func(s string) error {
				if s == "" {
					return leadstore.ErrEmptyName
				}
				return nil
			}),
		huh.NewInput().
			Key("email").
			Title("Email").
			Value(&v.Email),
		huh.NewInput().
			Key("phone").
			Title("Phone").
			Value(&v.Phone),
		huh.NewInput().
			Key("value").
			Title("Estimated Value").
			Placeholder("0").
			Value(&v.Value).
			Validate(func(s string) error {
				if s == "" {
					return nil
				}
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("not a number: %q", s)
				}
				if f < 0 {
					return leadstore.ErrNegativeValue
				}
				return nil
			}),
		huh.NewInput().
			Key("date").
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&v.Date),
		huh.NewSelect[string]().
			Key("stage").
			Title("Stage").
			Options(stageOpts...).
			Value(&v.Stage),
	))
}

// createRequest converts the submitted values into a store request.
func (v *leadFormValues) createRequest() leadstore.CreateRequest {
	value, _ := strconv.ParseFloat(v.Value, 64)
	return leadstore.CreateRequest{
		Name:           v.Name,
		Email:          v.Email,
		Phone:          v.Phone,
		EstimatedValue: value,
		Date:           v.Date,
		Column:         v.Stage,
	}
}

// updateRequest converts the submitted values into a full-field update.
func (v *leadFormValues) updateRequest(id int) leadstore.UpdateRequest {
	value, _ := strconv.ParseFloat(v.Value, 64)
	return leadstore.UpdateRequest{
		ID:             id,
		Name:           &v.Name,
		Email:          &v.Email,
		Phone:          &v.Phone,
		EstimatedValue: &value,
		Date:           &v.Date,
		Column:         &v.Stage,
	}
}

// reminderFormValues backs the follow-up form. The lead association is fixed
// when the form opens from a board card.
type reminderFormValues struct {
	LeadID   int
	LeadName string
	Type     string
	Title    string
	Notes    string
	When     string
	Priority string
}

func newReminderFormValues(lead models.Lead) *reminderFormValues {
	return &reminderFormValues{
		LeadID:   lead.ID,
		LeadName: lead.Name,
		Type:     models.ReminderTypeCall,
		Priority: models.PriorityMedium,
		When:     now().Add(24 * time.Hour).Format(dateTimeLayout),
	}
}

func newReminderForm(v *reminderFormValues) *huh.Form {
	typeOpts := make([]huh.Option[string], len(models.ReminderTypes))
	for i, t := range models.ReminderTypes {
		typeOpts[i] = huh.NewOption(t, t)
	}
	prioOpts := make([]huh.Option[string], len(models.Priorities))
	for i, p := range models.Priorities {
		prioOpts[i] = huh.NewOption(p, p)
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title(fmt.Sprintf("Follow up with %s", v.LeadName)).
			Placeholder("Reminder title...").
			Value(&v.Title).
			Validate(func(s string) error {
				if s == "" {
					return reminderstore.ErrEmptyTitle
				}
				return nil
			}),
		huh.NewSelect[string]().
			Key("type").
			Title("Type").
			Options(typeOpts...).
			Value(&v.Type),
		huh.NewInput().
			Key("when").
			Title("When").
			Placeholder(dateTimeLayout).
			Value(&v.When).
			Validate(func(s string) error {
				t, err := time.ParseInLocation(dateTimeLayout, s, time.Local)
				if err != nil {
					return fmt.Errorf("use %s", dateTimeLayout)
				}
				if t.Before(now()) {
					return reminderstore.ErrDateTimeInPast
				}
				return nil
			}),
		huh.NewSelect[string]().
			Key("priority").
			Title("Priority").
			Options(prioOpts...).
			Value(&v.Priority),
		huh.NewText().
			Key("notes").
			Title("Notes").
			Value(&v.Notes),
	))
}

// createRequest converts the submitted values into a store request.
func (v *reminderFormValues) createRequest() (reminderstore.CreateRequest, error) {
	when, err := time.ParseInLocation(dateTimeLayout, v.When, time.Local)
	if err != nil {
		return reminderstore.CreateRequest{}, err
	}
	return reminderstore.CreateRequest{
		LeadID:   v.LeadID,
		LeadName: v.LeadName,
		Type:     v.Type,
		Title:    v.Title,
		Notes:    v.Notes,
		When:     when,
		Priority: v.Priority,
	}, nil
}
