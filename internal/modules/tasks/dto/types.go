package dto

import "time"

type AddTaskInput struct {
	Name              string
	DueDate           time.Time
	EstimatedDuration time.Duration
}

type TaskOutput struct {
	ID                string
	Name              string
	DueDate           time.Time
	EstimatedDuration time.Duration
	Completed         bool
}

type ReminderOutput struct {
	ID        string
	ListID    string
	Title     string
	Notes     string
	DueDate   time.Time
	Completed bool
}

type ReminderListOutput struct {
	ID       string
	Title    string
	Selected bool
}

// AccessOutput reports whether reminders may be read and which list is
// selected.
type AccessOutput struct {
	Granted bool
	ListID  string
}
