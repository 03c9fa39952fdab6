package launchpad

import (
	"errors"
	"testing"
	"time"

	"github.com/canonical/ustriage/internal/types"
)

func validRaw() (BugTask, Bug) {
	updated := time.Date(2018, 3, 1, 9, 30, 0, 0, time.UTC)
	task := BugTask{
		SelfLink:     "https://api.launchpad.net/devel/ubuntu/+source/openssh/+bug/1654600",
		BugLink:      "https://api.launchpad.net/devel/bugs/1654600",
		Status:       "Triaged",
		Importance:   "High",
		AssigneeLink: "https://api.launchpad.net/devel/~ahasenack",
	}
	bug := Bug{
		ID:              1654600,
		Title:           "sshd fails to restart",
		Tags:            []string{"server-next"},
		DateLastUpdated: &updated,
	}
	return task, bug
}

func TestAdapt(t *testing.T) {
	task, bug := validRaw()

	rec, err := Adapt(task, bug, []string{"ahasenack", "powersj"})
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}

	if rec.ID != 1654600 {
		t.Errorf("ID = %d, want 1654600", rec.ID)
	}
	if rec.Status != types.StatusTriaged {
		t.Errorf("Status = %q, want %q", rec.Status, types.StatusTriaged)
	}
	if rec.Importance != types.ImportanceHigh {
		t.Errorf("Importance = %q, want %q", rec.Importance, types.ImportanceHigh)
	}
	if rec.Assignee != "ahasenack" {
		t.Errorf("Assignee = %q, want ahasenack", rec.Assignee)
	}
	if !rec.HasTag("server-next") {
		t.Error("Tags lost in adaptation")
	}
	if !rec.IsSubscriber("powersj") {
		t.Error("Subscribers lost in adaptation")
	}
	if !rec.LastUpdated.Equal(*bug.DateLastUpdated) {
		t.Errorf("LastUpdated = %v, want %v", rec.LastUpdated, bug.DateLastUpdated)
	}
}

func TestAdaptOptionalFieldsDefaultEmpty(t *testing.T) {
	task, bug := validRaw()
	task.AssigneeLink = ""
	bug.Tags = nil

	rec, err := Adapt(task, bug, nil)
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	if rec.Assignee != "" {
		t.Errorf("Assignee = %q, want empty", rec.Assignee)
	}
	if len(rec.Tags) != 0 || len(rec.Subscribers) != 0 {
		t.Errorf("Tags/Subscribers not empty: %v %v", rec.Tags, rec.Subscribers)
	}
}

func TestAdaptUnknownEnumValues(t *testing.T) {
	task, bug := validRaw()
	task.Status = "Some Future Status"
	task.Importance = "Blocker"

	rec, err := Adapt(task, bug, nil)
	if err != nil {
		t.Fatalf("Adapt() error = %v", err)
	}
	if rec.Status != types.StatusUnknown {
		t.Errorf("Status = %q, want Unknown fallback", rec.Status)
	}
	if rec.Importance != types.ImportanceUnknown {
		t.Errorf("Importance = %q, want Unknown fallback", rec.Importance)
	}
}

func TestAdaptMandatoryFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BugTask, *Bug)
		wantField string
	}{
		{"missing id", func(_ *BugTask, b *Bug) { b.ID = 0 }, "id"},
		{"negative id", func(_ *BugTask, b *Bug) { b.ID = -3 }, "id"},
		{"missing status", func(task *BugTask, _ *Bug) { task.Status = "" }, "status"},
		{"missing date", func(_ *BugTask, b *Bug) { b.DateLastUpdated = nil }, "date_last_updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, bug := validRaw()
			tt.mutate(&task, &bug)

			_, err := Adapt(task, bug, nil)
			if err == nil {
				t.Fatal("Adapt() error = nil, want AdapterError")
			}
			var aerr *AdapterError
			if !errors.As(err, &aerr) {
				t.Fatalf("error type = %T, want *AdapterError", err)
			}
			if aerr.Field != tt.wantField {
				t.Errorf("AdapterError.Field = %q, want %q", aerr.Field, tt.wantField)
			}
		})
	}
}

func TestPersonLinkName(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://api.launchpad.net/devel/~ahasenack", "ahasenack"},
		{"https://api.launchpad.net/devel/~ubuntu-server", "ubuntu-server"},
		{"", ""},
		{"https://api.launchpad.net/devel/people", ""},
	}
	for _, tt := range tests {
		if got := personLinkName(tt.link); got != tt.want {
			t.Errorf("personLinkName(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
