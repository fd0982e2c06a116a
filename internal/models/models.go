package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Role determines what a user may do. Roles are derived from the login
// email, not stored independently: the repository recomputes the role on
// every login.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// RoleForEmail derives the role from the login email. Any email containing
// "client" signs in as a client; everyone else is an admin.
func RoleForEmail(email string) Role {
	if strings.Contains(strings.ToLower(email), "client") {
		return RoleClient
	}
	return RoleAdmin
}

// ParseRole validates a stored role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClient:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Status is a task's position on the board.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

// Statuses lists every status in board-column order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Label returns the human-readable column title for a status.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Priority is a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority from least to most urgent.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// ParsePriority validates a priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Label returns the human-readable name for a priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// User is an account created on first login. Users are never deleted.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   Role   `json:"role"`
}

// Project groups tasks. Projects are created and deleted, never edited in
// place; deleting one removes its tasks with it.
type Project struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	CreatedAt   int64  `json:"createdAt"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	AssigneeID  string   `json:"assigneeId,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}

// Comment is an append-only note on a task. Author fields are snapshotted
// at creation time so later renames do not rewrite history.
type Comment struct {
	ID         string `json:"id"`
	TaskID     string `json:"taskId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
}

// AvatarURL builds the deterministic avatar reference for a display name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=059669&color=fff"
}

// Now returns the current time in Unix milliseconds, the timestamp format
// every persisted record uses.
func Now() int64 {
	return time.Now().UnixMilli()
}
