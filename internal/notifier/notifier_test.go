package notifier

import (
	"errors"
	"strings"
	"testing"
)

type sent struct {
	title, message string
}

func captureNotifications(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	orig := notifyFunc
	notifyFunc = func(title, message string) error {
		got = append(got, sent{title, message})
		return err
	}
	t.Cleanup(func() { notifyFunc = orig })
	return &got
}

func TestGoalCrossed(t *testing.T) {
	tests := []struct {
		name                string
		before, after, goal int
		want                bool
	}{
		{"crosses", 90, 104, 100, true},
		{"lands exactly", 96, 100, 100, true},
		{"already met", 100, 104, 100, false},
		{"still short", 50, 60, 100, false},
		{"zero goal", 0, 4, 0, false},
		{"score lowered", 104, 98, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoalCrossed(tt.before, tt.after, tt.goal); got != tt.want {
				t.Errorf("GoalCrossed(%d, %d, %d) = %v, want %v", tt.before, tt.after, tt.goal, got, tt.want)
			}
		})
	}
}

func TestGoalReached(t *testing.T) {
	got := captureNotifications(t, nil)

	n := New(true)
	ok, err := n.GoalReached(98, 101, 100)
	if err != nil || !ok {
		t.Fatalf("GoalReached = %v, %v; want true, nil", ok, err)
	}
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	if (*got)[0].title != "slotscore" || !strings.Contains((*got)[0].message, "101/100") {
		t.Errorf("notification = %+v", (*got)[0])
	}

	if ok, _ := n.GoalReached(101, 105, 100); ok {
		t.Error("notified again after goal already met")
	}
}

func TestDisabled(t *testing.T) {
	got := captureNotifications(t, nil)

	for _, n := range []*Notifier{New(false), nil} {
		if err := n.Notify("hello"); err != nil {
			t.Errorf("Notify on disabled notifier = %v", err)
		}
		if ok, _ := n.GoalReached(0, 200, 100); ok {
			t.Error("disabled notifier reported a notification")
		}
	}
	if len(*got) != 0 {
		t.Errorf("disabled notifier sent %d notifications", len(*got))
	}
}

func TestNotifyError(t *testing.T) {
	boom := errors.New("no dbus")
	captureNotifications(t, boom)

	ok, err := New(true).GoalReached(0, 120, 100)
	if ok || !errors.Is(err, boom) {
		t.Errorf("GoalReached = %v, %v; want false and wrapped error", ok, err)
	}
}
