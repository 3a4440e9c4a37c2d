package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/venda-crm/venda/internal/agenda"
	"github.com/venda-crm/venda/internal/models"
	reminderstore "github.com/venda-crm/venda/internal/store/reminder"
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage follow-up reminders",
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders grouped by urgency",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		var reminders []models.Reminder
		leadID, _ := cmd.Flags().GetInt("lead")
		if leadID > 0 {
			reminders, err = a.Reminders.ListByLead(ctx, leadID)
		} else {
			reminders, err = a.Reminders.List(ctx)
		}
		if err != nil {
			return err
		}

		cats := agenda.Categorize(reminders, time.Now())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, bucket := range agenda.Buckets {
			rs := cats[bucket]
			if len(rs) == 0 {
				continue
			}
			fmt.Fprintf(w, "%s:\n", bucket)
			for _, r := range rs {
				fmt.Fprintf(w, "  %d\t[%s]\t%s\t%s\t%s\t%s\n",
					r.ID, r.Type, r.Title, r.LeadName, r.Priority,
					r.ReminderDateTime.Local().Format("2006-01-02 15:04"))
			}
		}
		return w.Flush()
	},
}

var reminderAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a follow-up reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		flags := cmd.Flags()
		leadID, _ := flags.GetInt("lead")
		title, _ := flags.GetString("title")
		rtype, _ := flags.GetString("type")
		notes, _ := flags.GetString("notes")
		priority, _ := flags.GetString("priority")
		whenStr, _ := flags.GetString("when")

		when, err := time.ParseInLocation("2006-01-02 15:04", whenStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --when %q: use YYYY-MM-DD HH:MM", whenStr)
		}

		// Denormalized lead name for display, tolerating a dangling id.
		leadName := ""
		if lead, err := a.Leads.GetByID(ctx, leadID); err == nil {
			leadName = lead.Name
		}

		r, err := a.Reminders.Create(ctx, reminderstore.CreateRequest{
			LeadID:   leadID,
			LeadName: leadName,
			Type:     rtype,
			Title:    title,
			Notes:    notes,
			When:     when,
			Priority: priority,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created reminder #%d (%s)\n", r.ID, r.Title)
		return nil
	},
}

var reminderDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a reminder completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reminder id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		r, err := a.Reminders.MarkCompleted(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("Completed reminder #%d (%s)\n", r.ID, r.Title)
		return nil
	},
}

var reminderDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reminder id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		if err := a.Reminders.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted reminder #%d\n", id)
		return nil
	},
}

func init() {
	reminderListCmd.Flags().Int("lead", 0, "only reminders for this lead id")

	reminderAddCmd.Flags().Int("lead", 0, "lead id the follow-up is for")
	reminderAddCmd.Flags().String("title", "", "reminder title (required)")
	reminderAddCmd.Flags().String("type", models.ReminderTypeCall, "call, email, meeting or task")
	reminderAddCmd.Flags().String("notes", "", "free-text notes (markdown)")
	reminderAddCmd.Flags().String("priority", models.PriorityMedium, "low, medium or high")
	reminderAddCmd.Flags().String("when", "", "due date/time (YYYY-MM-DD HH:MM)")

	reminderCmd.AddCommand(reminderListCmd, reminderAddCmd, reminderDoneCmd, reminderDeleteCmd)
	rootCmd.AddCommand(reminderCmd)
}
