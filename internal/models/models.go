package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

type Task struct {
	ID        int    `json:"id"`
	Task      string `json:"task"`
	UserID    int    `json:"user_id"`
	Completed bool   `json:"completed"`
}
