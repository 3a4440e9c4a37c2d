package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	leadstore "github.com/venda-crm/venda/internal/store/lead"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Manage pipeline leads",
}

var leadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		all, _ := cmd.Flags().GetBool("all")
		leads, err := a.Leads.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTAGE\tVALUE\tDATE\tARCHIVED")
		for _, l := range leads {
			if l.Archived && !all {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%s\t%v\n",
				l.ID, l.Name, l.Column, l.EstimatedValue, l.Date, l.Archived)
		}
		return w.Flush()
	},
}

var leadShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single lead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		l, err := a.Leads.GetByID(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("Lead #%d\n", l.ID)
		fmt.Printf("  Name:    %s\n", l.Name)
		fmt.Printf("  Email:   %s\n", l.Email)
		fmt.Printf("  Phone:   %s\n", l.Phone)
		fmt.Printf("  Value:   $%.2f\n", l.EstimatedValue)
		fmt.Printf("  Date:    %s\n", l.Date)
		fmt.Printf("  Stage:   %s\n", l.Column)
		fmt.Printf("  Archived: %v\n", l.Archived)
		fmt.Printf("  Updated: %s\n", l.UpdatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var leadCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a lead",
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
		name, _ := flags.GetString("name")
		email, _ := flags.GetString("email")
		phone, _ := flags.GetString("phone")
		value, _ := flags.GetFloat64("value")
		date, _ := flags.GetString("date")
		stage, _ := flags.GetString("stage")
		if stage == "" && len(a.Config.Stages) > 0 {
			stage = a.Config.Stages[0].Title
		}

		l, err := a.Leads.Create(ctx, leadstore.CreateRequest{
			Name:           name,
			Email:          email,
			Phone:          phone,
			EstimatedValue: value,
			Date:           date,
			Column:         stage,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created lead #%d (%s)\n", l.ID, l.Name)
		return nil
	},
}

var leadUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update lead fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		req := leadstore.UpdateRequest{ID: id}
		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			req.Name = &v
		}
		if flags.Changed("email") {
			v, _ := flags.GetString("email")
			req.Email = &v
		}
		if flags.Changed("phone") {
			v, _ := flags.GetString("phone")
			req.Phone = &v
		}
		if flags.Changed("value") {
			v, _ := flags.GetFloat64("value")
			req.EstimatedValue = &v
		}
		if flags.Changed("date") {
			v, _ := flags.GetString("date")
			req.Date = &v
		}

		l, err := a.Leads.Update(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Updated lead #%d\n", l.ID)
		return nil
	},
}

var leadMoveCmd = &cobra.Command{
	Use:   "move <id> <stage>",
	Short: "Move a lead to another pipeline stage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		l, err := a.Leads.ChangeStage(ctx, id, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Lead #%d is now in %q\n", l.ID, l.Column)
		return nil
	},
}

var leadArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a lead (hidden from the board, kept in storage)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		if err := a.Leads.Archive(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Archived lead #%d\n", id)
		return nil
	},
}

var leadDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Clone a lead under a fresh id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		l, err := a.Leads.Duplicate(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("Duplicated lead #%d as #%d\n", id, l.ID)
		return nil
	},
}

var leadDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a lead permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lead id %q", args[0])
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := requireSession(ctx, a); err != nil {
			return err
		}

		if err := a.Leads.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted lead #%d\n", id)
		return nil
	},
}

func init() {
	leadCreateCmd.Flags().String("name", "", "lead name (required)")
	leadCreateCmd.Flags().String("email", "", "contact email")
	leadCreateCmd.Flags().String("phone", "", "contact phone")
	leadCreateCmd.Flags().Float64("value", 0, "estimated value")
	leadCreateCmd.Flags().String("date", "", "associated date (YYYY-MM-DD)")
	leadCreateCmd.Flags().String("stage", "", "pipeline stage (default: first configured)")

	leadUpdateCmd.Flags().String("name", "", "lead name")
	leadUpdateCmd.Flags().String("email", "", "contact email")
	leadUpdateCmd.Flags().String("phone", "", "contact phone")
	leadUpdateCmd.Flags().Float64("value", 0, "estimated value")
	leadUpdateCmd.Flags().String("date", "", "associated date (YYYY-MM-DD)")

	leadListCmd.Flags().Bool("all", false, "include archived leads")

	leadCmd.AddCommand(leadListCmd, leadShowCmd, leadCreateCmd, leadUpdateCmd,
		leadMoveCmd, leadArchiveCmd, leadDuplicateCmd, leadDeleteCmd)
	rootCmd.AddCommand(leadCmd)
}
