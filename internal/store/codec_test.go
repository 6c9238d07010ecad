package store

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fentz26/carcare/internal/models"
)

func TestEncodeFormat(t *testing.T) {
	tasks := []models.Task{
		{Item: "Engine Oil", Priority: "High", Description: "Replace every 10,000 km", Completed: false},
		{Item: "Tires", Priority: "Medium", Description: "   ", Completed: true},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := "Item: Engine Oil\n" +
		"Priority: High\n" +
		"Description: Replace every 10,000 km\n" +
		"Completed: False\n" +
		"\n" +
		"Item: Tires\n" +
		"Priority: Medium\n" +
		"Completed: True\n" +
		"\n"
	if buf.String() != want {
		t.Errorf("unexpected encoding\nwant:\n%q\ngot:\n%q", want, buf.String())
	}
}

func TestDecodeExample(t *testing.T) {
	tasks, err := Decode(strings.NewReader("Item: Tires\nPriority: Medium\nCompleted: True\n\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := models.Task{Item: "Tires", Priority: "Medium", Description: "", Completed: true}
	if len(tasks) != 1 || tasks[0] != want {
		t.Errorf("expected [%+v], got %+v", want, tasks)
	}
}

func TestDecodeLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.Task
	}{
		{
			name:  "no trailing blank line",
			input: "Item: A\nPriority: Low\nCompleted: False\n\nItem: B\nPriority: High\nCompleted: true",
			want: []models.Task{
				{Item: "A", Priority: "Low"},
				{Item: "B", Priority: "High", Completed: true},
			},
		},
		{
			name:  "reordered fields",
			input: "Item: A\nCompleted: TRUE\nDescription: later\nPriority: Medium\n",
			want:  []models.Task{{Item: "A", Priority: "Medium", Description: "later", Completed: true}},
		},
		{
			name:  "missing priority and completed",
			input: "Item: A\n\nItem: B\nDescription: d\n",
			want: []models.Task{
				{Item: "A"},
				{Item: "B", Description: "d"},
			},
		},
		{
			name:  "no blank line between records",
			input: "Item: A\nPriority: High\nItem: B\nPriority: Low\n",
			want: []models.Task{
				{Item: "A", Priority: "High"},
				{Item: "B", Priority: "Low"},
			},
		},
		{
			name:  "fields before first item are discarded",
			input: "Priority: High\nCompleted: True\nItem: A\n",
			want:  []models.Task{{Item: "A"}},
		},
		{
			name:  "empty item dropped",
			input: "Item:\nPriority: High\nItem: B\n",
			want:  []models.Task{{Item: "B"}},
		},
		{
			name:  "completed value other than true",
			input: "Item: A\nCompleted: yes\n",
			want:  []models.Task{{Item: "A"}},
		},
		{
			name:  "whitespace and crlf",
			input: "  Item:   A  \r\n\tPriority: High\r\nCompleted:   True \r\n\r\n",
			want:  []models.Task{{Item: "A", Priority: "High", Completed: true}},
		},
		{
			name:  "unknown lines ignored",
			input: "# my car\nItem: A\nMileage: 3\nPriority: Low\n",
			want:  []models.Task{{Item: "A", Priority: "Low"}},
		},
		{
			name:  "key text inside value kept",
			input: "Item: Check Item: wipers\n",
			want:  []models.Task{{Item: "Check Item: wipers"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tasks, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("task %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tasks := []models.Task{
		{Item: "Engine Oil", Priority: "High", Description: "Replace every 7,500 km or 1 year, whichever comes first", Completed: false},
		{Item: "Tires", Priority: "Medium", Description: "", Completed: true},
		{Item: "Wipers", Priority: "Low", Description: "Before winter", Completed: true},
		{Item: "Custom", Priority: "", Description: "", Completed: false},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, tasks); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != len(tasks) {
		t.Fatalf("expected %d tasks, got %d", len(tasks), len(got))
	}
	for i := range tasks {
		if got[i] != tasks[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, tasks[i], got[i])
		}
	}
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestDecodeReadErrorReturnsPartial(t *testing.T) {
	boom := errors.New("disk gone")
	r := &failingReader{data: "Item: A\nPriority: High\n\nItem: B\nPriority: Lo", err: boom}

	got, err := Decode(r)
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if len(got) != 1 || got[0].Item != "A" {
		t.Errorf("expected the complete record A only, got %+v", got)
	}

	if _, err := Decode(&failingReader{err: io.ErrUnexpectedEOF}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
}
