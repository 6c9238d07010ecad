package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fentz26/carcare/internal/models"
)

// Record keys of the task file format.
const (
	keyItem        = "Item:"
	keyPriority    = "Priority:"
	keyDescription = "Description:"
	keyCompleted   = "Completed:"
)

// Encode writes tasks in the line-oriented task file format. Each record is
// followed by a blank line; the description line is omitted when blank.
func Encode(w io.Writer, tasks []models.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		fmt.Fprintf(bw, "%s %s\n", keyItem, t.Item)
		fmt.Fprintf(bw, "%s %s\n", keyPriority, t.Priority)
		if strings.TrimSpace(t.Description) != "" {
			fmt.Fprintf(bw, "%s %s\n", keyDescription, t.Description)
		}
		fmt.Fprintf(bw, "%s %s\n", keyCompleted, formatBool(t.Completed))
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Decode parses the task file format.
//
// Parsing is driven by field presence, not line position: an Item line starts
// a new record, other keys fill the pending record in any order, unknown lines
// are skipped and missing fields stay empty. Records without an item are
// dropped. On a read error the complete records parsed so far are returned
// with it.
func Decode(r io.Reader) ([]models.Task, error) {
	var (
		tasks   []models.Task
		pending models.Task
		done    string
	)

	flush := func() {
		if pending.Item == "" {
			return
		}
		pending.Completed = strings.EqualFold(done, "true")
		tasks = append(tasks, pending)
	}

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			line := strings.TrimSpace(raw)
			switch {
			case strings.HasPrefix(line, keyItem):
				flush()
				pending = models.Task{Item: fieldValue(line, keyItem)}
				done = ""
			case strings.HasPrefix(line, keyPriority):
				pending.Priority = fieldValue(line, keyPriority)
			case strings.HasPrefix(line, keyDescription):
				pending.Description = fieldValue(line, keyDescription)
			case strings.HasPrefix(line, keyCompleted):
				done = fieldValue(line, keyCompleted)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return tasks, err
		}
	}
	flush()
	return tasks, nil
}

func fieldValue(line, key string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, key))
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
