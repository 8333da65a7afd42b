package notifier

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/slotscore/internal/constants"
)

var notifyFunc = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func init() {
	beeep.AppName = constants.AppName
}

type Notifier struct {
	enabled bool
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.enabled
}

func (n *Notifier) Notify(text string) error {
	if !n.Enabled() {
		return nil
	}
	if err := notifyFunc(constants.NotificationTitle, text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// GoalCrossed reports whether a daily total moving from before to after
// reaches goal for the first time that day.
func GoalCrossed(before, after, goal int) bool {
	return goal > 0 && before < goal && after >= goal
}

// GoalReached notifies once when today's total first reaches the daily goal.
// It returns whether a notification was sent.
func (n *Notifier) GoalReached(before, after, goal int) (bool, error) {
	if !n.Enabled() || !GoalCrossed(before, after, goal) {
		return false, nil
	}
	text := fmt.Sprintf("Daily goal reached: %d/%d points. Keep it up!", after, goal)
	if err := n.Notify(text); err != nil {
		return false, err
	}
	return true, nil
}
