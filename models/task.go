package models

// Task is a single to-do item owned by a user.
// User holds the owner's username; every task operation filters on it.
type Task struct {
	ID   int64  `json:"id"`
	Task string `json:"task"`
	User string `json:"user"`
}

// Document is the whole persisted store: every read and write covers the
// entire document, there is no partial access.
type Document struct {
	Users []User `json:"users"`
	Tasks []Task `json:"tasks"`
}

// AddTaskRequest is the POST /add body
type AddTaskRequest struct {
	Task string `json:"task"`
}

// EditTaskRequest is the PUT /tasks/{id} body
type EditTaskRequest struct {
	Task string `json:"task"`
}
