package models

import "time"

// TaskStatusToDo is the status every task is created with. The task store
// owns all other status values; this service only reads them back.
const TaskStatusToDo = "To Do"

// Task represents a task record in the Notion database.
// All identifiers are assigned by Notion.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee,omitempty"` // Notion user ID
	URL         string `json:"url,omitempty"`
}

// Document is a recently edited page in the Notion database.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	LastEditedTime time.Time `json:"last_edited_time"`
}
