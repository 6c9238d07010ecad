package shell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fentz26/carcare/internal/audit"
	"github.com/fentz26/carcare/internal/garage"
	"github.com/fentz26/carcare/internal/models"
	"github.com/fentz26/carcare/internal/schedule"
	"github.com/fentz26/carcare/internal/store"
	"github.com/rs/zerolog"
)

func newTestService(t *testing.T, tasks ...models.Task) *garage.Service {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "tasks.txt"))
	for _, task := range tasks {
		s.Append(task)
	}
	return garage.NewService(s, schedule.NewEngine(schedule.DefaultTable()), audit.NewRecorder(zerolog.New(io.Discard)), 2024)
}

// runShell feeds input lines to a shell and returns everything it printed.
func runShell(t *testing.T, svc *garage.Service, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := New(svc, in, &out).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n--- output ---\n%s", w, out)
		}
	}
}

func TestMenuExit(t *testing.T) {
	out := runShell(t, newTestService(t), "6")

	assertContains(t, out,
		"--- Menu ---",
		"1. Show all tasks",
		"6. Exit",
		"Enter your choice: ",
		"Exiting program.",
	)
	if strings.Contains(out, "Warning") {
		t.Errorf("no unsaved-changes warning expected: %s", out)
	}
}

func TestMenuInvalidChoices(t *testing.T) {
	out := runShell(t, newTestService(t), "abc", "", "9", "0", "6")

	if n := strings.Count(out, "Invalid input. Please enter a number between 1 and 6."); n != 2 {
		t.Errorf("expected 2 invalid-input messages, got %d", n)
	}
	if n := strings.Count(out, "Invalid choice. Please select a valid option."); n != 2 {
		t.Errorf("expected 2 invalid-choice messages, got %d", n)
	}
	if n := strings.Count(out, "--- Menu ---"); n != 5 {
		t.Errorf("expected menu shown 5 times, got %d", n)
	}
}

func TestEOFExits(t *testing.T) {
	svc := newTestService(t)
	var out bytes.Buffer
	if err := New(svc, strings.NewReader("1\n"), &out).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	assertContains(t, out.String(), "No tasks available.", "Exiting program.")
}

func TestShowTasks(t *testing.T) {
	svc := newTestService(t,
		models.Task{Item: "Engine Oil", Priority: "High", Description: "Replace soon"},
		models.Task{Item: "Tires", Priority: "Medium", Completed: true},
	)
	out := runShell(t, svc, "1", "6")

	assertContains(t, out,
		"--- All Tasks ---",
		"1. Engine Oil (Priority: High) - [Pending]\n   Description: Replace soon\n",
		"2. Tires (Priority: Medium) - [Done]\n",
	)
}

func TestAddRecommendedTask(t *testing.T) {
	svc := newTestService(t)
	out := runShell(t, svc,
		"2",
		"Truck", // unknown category
		"SUV", "twenty", "1", // bad year
		"SUV", "2015", "120000",
		"x", "7", "2",
		"6",
	)

	assertContains(t, out,
		"--- Initializing Car Information ---",
		"Enter car type (Compact Car, Sedan, SUV): ",
		`Invalid input: unknown vehicle category: "Truck". Please try again.`,
		`Invalid input: car year must be a whole number, got "twenty". Please try again.`,
		"Car information saved.",
		"--- Recommended Maintenance Tasks ---",
		"1. Engine Oil - Priority: High, Replace every 7,500 km or 1 year, whichever comes first"+schedule.HeavyUseSuffix,
		"Enter '0' to skip these and add a custom task.",
		"Invalid input. Please enter a valid number.",
		"Invalid number. Please select a valid option.",
		"Task 'Brake Pads' added successfully.",
		"Warning: unsaved changes were not written to",
	)
	if strings.Contains(out, "--- Enter Custom Task Details ---") {
		t.Error("custom entry should not be offered after a recommendation is chosen")
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Item != "Brake Pads" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	v, ok := svc.Vehicle()
	if !ok || v.Category != models.CategorySUV || v.ModelYear != 2015 || v.OdometerKm != 120000 {
		t.Errorf("unexpected vehicle %+v", v)
	}
}

func TestAddCustomTaskReusesVehicle(t *testing.T) {
	svc := newTestService(t)
	out := runShell(t, svc,
		"2", "Sedan", "2022", "10000", "0", "Wipers", "Low", "",
		"2", "0", "Coolant", "High", "Top up before summer",
		"6",
	)

	if n := strings.Count(out, "--- Enter Car Information ---"); n != 1 {
		t.Errorf("vehicle info should be collected once, got %d", n)
	}
	assertContains(t, out,
		"Car information is already initialized",
		"--- Enter Custom Task Details ---",
		"Enter the priority level (High, Medium, Low): ",
		"Task 'Wipers' added successfully.",
		"Task 'Coolant' added successfully.",
	)

	tasks := svc.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Description != "" || tasks[1].Description != "Top up before summer" {
		t.Errorf("unexpected descriptions %+v", tasks)
	}
}

func TestCompleteAndRemove(t *testing.T) {
	svc := newTestService(t,
		models.Task{Item: "A", Priority: "High"},
		models.Task{Item: "B", Priority: "Low"},
		models.Task{Item: "C", Priority: "Low"},
	)
	out := runShell(t, svc,
		"3", "2",
		"3", "2",
		"3", "9",
		"3", "two",
		"4", "1",
		"4", "0",
		"6",
	)

	if n := strings.Count(out, "Task 'B' marked as completed."); n != 2 {
		t.Errorf("expected idempotent completion messages, got %d", n)
	}
	assertContains(t, out,
		"Invalid task number. Please try again.",
		"Invalid input. Please enter a valid number.",
		"Task 'A' removed successfully.",
	)

	tasks := svc.Tasks()
	if len(tasks) != 2 || tasks[0].Item != "B" || !tasks[0].Completed || tasks[1].Item != "C" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
}

func TestSave(t *testing.T) {
	svc := newTestService(t, models.Task{Item: "Tires", Priority: "Medium"})
	out := runShell(t, svc, "3", "1", "5", "6")

	path := svc.Store().Path()
	assertContains(t, out, "Tasks saved to '"+path+"' successfully.")
	if strings.Contains(out, "Warning") {
		t.Errorf("no warning expected after save: %s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Item: Tires\nPriority: Medium\nCompleted: True\n\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestSaveFailureContinues(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "missing-dir", "tasks.txt"))
	svc := garage.NewService(s, schedule.NewEngine(schedule.DefaultTable()), audit.NewRecorder(zerolog.New(io.Discard)), 2024)

	out := runShell(t, svc, "5", "1", "6")
	assertContains(t, out, "Failed to save tasks to", "--- All Tasks ---", "Exiting program.")
}
