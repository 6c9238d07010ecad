// Package shell implements the numbered interactive menu over plain text I/O.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fentz26/carcare/internal/garage"
	"github.com/fentz26/carcare/internal/log"
	"github.com/fentz26/carcare/internal/models"
	"github.com/fentz26/carcare/internal/schedule"
)

// Menu choices.
const (
	choiceShow = iota + 1
	choiceAdd
	choiceComplete
	choiceRemove
	choiceSave
	choiceExit
)

// errInputClosed ends the session when the input stream runs out.
var errInputClosed = errors.New("input closed")

// Shell runs the menu loop for one session.
type Shell struct {
	svc *garage.Service
	in  *bufio.Reader
	out io.Writer
}

// New creates a shell reading answers from in and writing to out.
func New(svc *garage.Service, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run shows the menu until the user exits or input ends.
func (sh *Shell) Run() error {
	for {
		sh.printMenu()
		line, err := sh.prompt("Enter your choice: ")
		if err != nil {
			return sh.exit(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			sh.println("Invalid input. Please enter a number between 1 and 6.")
			continue
		}
		log.Debug().Int("choice", choice).Msg("menu")

		switch choice {
		case choiceShow:
			sh.showTasks()
		case choiceAdd:
			err = sh.addTask()
		case choiceComplete:
			err = sh.completeTask()
		case choiceRemove:
			err = sh.removeTask()
		case choiceSave:
			sh.saveTasks()
		case choiceExit:
			return sh.exit(nil)
		default:
			sh.println("Invalid choice. Please select a valid option.")
		}
		if err != nil {
			return sh.exit(err)
		}
	}
}

func (sh *Shell) exit(err error) error {
	if err != nil && !errors.Is(err, errInputClosed) {
		return err
	}
	if errors.Is(err, errInputClosed) {
		sh.println("")
	}
	sh.println("Exiting program.")
	if sh.svc.Unsaved() {
		sh.printf("Warning: unsaved changes were not written to '%s'.\n", sh.svc.Store().Path())
	}
	return nil
}

func (sh *Shell) printMenu() {
	sh.println("\n--- Menu ---")
	sh.println("1. Show all tasks")
	sh.println("2. Add a new task")
	sh.println("3. Complete tasks")
	sh.println("4. Remove tasks")
	sh.println("5. Save tasks to file")
	sh.println("6. Exit")
}

func (sh *Shell) showTasks() {
	sh.println("\n--- All Tasks ---")
	tasks := sh.svc.Tasks()
	if len(tasks) == 0 {
		sh.println("No tasks available.")
		return
	}
	for i, t := range tasks {
		sh.printf("%d. %s (Priority: %s) - [%s]\n", i+1, t.Item, t.Priority, t.Status())
		if t.Description != "" {
			sh.printf("   Description: %s\n", t.Description)
		}
	}
}

// ensureVehicle collects vehicle information once per session.
func (sh *Shell) ensureVehicle() error {
	if _, ok := sh.svc.Vehicle(); ok {
		sh.println("Car information is already initialized")
		return nil
	}

	sh.println("\n--- Initializing Car Information ---")
	for {
		v, reason, err := sh.readVehicle()
		if err != nil {
			return err
		}
		if reason == "" {
			if err := sh.svc.SetVehicle(v); err != nil {
				reason = err.Error()
			}
		}
		if reason != "" {
			sh.printf("Invalid input: %s. Please try again.\n", reason)
			continue
		}
		sh.println("Car information saved.")
		return nil
	}
}

// readVehicle prompts for one vehicle profile. A non-empty reason means the
// answers were invalid and the caller should ask again.
func (sh *Shell) readVehicle() (v models.VehicleProfile, reason string, err error) {
	sh.println("\n--- Enter Car Information ---")

	names := make([]string, 0, 3)
	for _, c := range schedule.Categories() {
		names = append(names, string(c))
	}
	line, err := sh.prompt(fmt.Sprintf("Enter car type (%s): ", strings.Join(names, ", ")))
	if err != nil {
		return v, "", err
	}
	cat, perr := schedule.ParseCategory(strings.TrimSpace(line))
	if perr != nil {
		return v, perr.Error(), nil
	}
	v.Category = cat

	if v.ModelYear, reason, err = sh.promptInt("Enter car year (e.g. 2021): ", "car year"); err != nil || reason != "" {
		return v, reason, err
	}
	if v.OdometerKm, reason, err = sh.promptInt("Enter car mileage (e.g. 30000): ", "car mileage"); err != nil || reason != "" {
		return v, reason, err
	}
	return v, "", nil
}

func (sh *Shell) promptInt(msg, what string) (int, string, error) {
	line, err := sh.prompt(msg)
	if err != nil {
		return 0, "", err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Sprintf("%s must be a whole number, got %q", what, strings.TrimSpace(line)), nil
	}
	return n, "", nil
}

func (sh *Shell) addTask() error {
	if err := sh.ensureVehicle(); err != nil {
		return err
	}

	recs, err := sh.svc.Recommendations()
	if err != nil {
		log.Warn().Err(err).Msg("recommendations")
		recs = nil
	}

	if len(recs) > 0 {
		sh.println("\n--- Recommended Maintenance Tasks ---")
		for i, r := range recs {
			sh.printf("%d. %s - Priority: %s, %s\n", i+1, r.Item, r.Priority, r.Description)
		}
		sh.println("\nEnter '0' to skip these and add a custom task.")

		for {
			line, err := sh.prompt("Select the task number to add or 0 to skip: ")
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				sh.println("Invalid input. Please enter a valid number.")
				continue
			}
			if n == 0 {
				break
			}
			task, err := sh.svc.AddRecommendation(n)
			if errors.Is(err, garage.ErrInvalidSelection) {
				sh.println("Invalid number. Please select a valid option.")
				continue
			}
			if err != nil {
				return err
			}
			sh.printf("Task '%s' added successfully.\n", task.Item)
			return nil
		}
	}

	sh.println("\n--- Enter Custom Task Details ---")
	item, err := sh.prompt("Enter the item name: ")
	if err != nil {
		return err
	}
	priority, err := sh.prompt("Enter the priority level (High, Medium, Low): ")
	if err != nil {
		return err
	}
	description, err := sh.prompt("Enter the description (optional): ")
	if err != nil {
		return err
	}
	task := sh.svc.AddCustom(item, priority, description)
	sh.printf("Task '%s' added successfully.\n", task.Item)
	return nil
}

func (sh *Shell) completeTask() error {
	sh.showTasks()
	index, ok, err := sh.promptIndex("Enter the task number to mark as completed: ")
	if err != nil || !ok {
		return err
	}
	task, err := sh.svc.Complete(index)
	if err != nil {
		sh.println("Invalid task number. Please try again.")
		return nil
	}
	sh.printf("Task '%s' marked as completed.\n", task.Item)
	return nil
}

func (sh *Shell) removeTask() error {
	sh.showTasks()
	index, ok, err := sh.promptIndex("Enter the task number to remove: ")
	if err != nil || !ok {
		return err
	}
	task, err := sh.svc.Remove(index)
	if err != nil {
		sh.println("Invalid task number. Please try again.")
		return nil
	}
	sh.printf("Task '%s' removed successfully.\n", task.Item)
	return nil
}

// promptIndex reads a task number. ok is false when the answer was not a number.
func (sh *Shell) promptIndex(msg string) (index int, ok bool, err error) {
	line, err := sh.prompt(msg)
	if err != nil {
		return 0, false, err
	}
	index, err = strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		sh.println("Invalid input. Please enter a valid number.")
		return 0, false, nil
	}
	return index, true, nil
}

func (sh *Shell) saveTasks() {
	if err := sh.svc.Save(); err != nil {
		sh.printf("Failed to save tasks to '%s': %v\n", sh.svc.Store().Path(), err)
		return
	}
	sh.printf("Tasks saved to '%s' successfully.\n", sh.svc.Store().Path())
}

// prompt writes msg and reads one line without its line ending.
func (sh *Shell) prompt(msg string) (string, error) {
	fmt.Fprint(sh.out, msg)
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

func (sh *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.out, format, args...)
}
