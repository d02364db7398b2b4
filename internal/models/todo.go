package models

// TodoItem is a single task inside a list.
type TodoItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TodoList is a named collection of tasks owned by exactly one user.
type TodoList struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Star        bool       `json:"star"`
	Archive     bool       `json:"archive"`
	Todos       []TodoItem `json:"todos"`
}
