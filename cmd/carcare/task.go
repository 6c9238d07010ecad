package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fentz26/carcare/internal/garage"
	"github.com/fentz26/carcare/internal/models"
	"github.com/spf13/cobra"
)

func newTaskCmd(opts *options) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks without the interactive menu",
	}

	var (
		item     string
		priority string
		desc     string
	)

	taskListCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := opts.session(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printTasks(cmd, svc)
		},
	}

	taskAddCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.writableSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			task := svc.AddCustom(item, priority, desc)
			if err := svc.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' added successfully.\n", task.Item)
			return nil
		},
	}
	taskAddCmd.Flags().StringVar(&item, "item", "", "Task item (required)")
	taskAddCmd.Flags().StringVar(&priority, "priority", "", "Priority (High, Medium, Low)")
	taskAddCmd.Flags().StringVar(&desc, "desc", "", "Task description")
	taskAddCmd.MarkFlagRequired("item")

	taskDoneCmd := &cobra.Command{
		Use:   "done [task-number]",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, opts, args[0], (*garage.Service).Complete, "Task '%s' marked as completed.\n")
		},
	}

	taskRmCmd := &cobra.Command{
		Use:     "rm [task-number]",
		Aliases: []string{"remove"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTask(cmd, opts, args[0], (*garage.Service).Remove, "Task '%s' removed successfully.\n")
		},
	}

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskDoneCmd, taskRmCmd)
	return taskCmd
}

func printTasks(cmd *cobra.Command, svc *garage.Service) error {
	tasks := svc.Tasks()
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks available.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tITEM\tPRIORITY\tSTATUS\tDESCRIPTION")
	for i, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, truncate(t.Item, 30), t.Priority, t.Status(), truncate(t.Description, 60))
	}
	return w.Flush()
}

// mutateTask loads the task file, applies op to the numbered task and saves.
func mutateTask(cmd *cobra.Command, opts *options, arg string, op func(*garage.Service, int) (models.Task, error), format string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid task number %q", arg)
	}
	svc, err := opts.writableSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	task, err := op(svc, n)
	if err != nil {
		return err
	}
	if err := svc.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, task.Item)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
