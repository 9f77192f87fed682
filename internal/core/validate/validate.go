// Package validate provides shared validation functions for form input.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

// NonEmpty validates a value is non-empty after trimming whitespace.
func NonEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// TaskTitle validates a task title.
func TaskTitle(title string) error {
	return NonEmpty(title)
}

// TaskText validates a task description.
func TaskText(text string) error {
	return NonEmpty(text)
}

// AssignableDepartment validates a user-selected department. The Empty
// sentinel is reserved for the server and rejected here.
func AssignableDepartment(d domain.Department) error {
	if !d.IsAssignable() {
		return fmt.Errorf("department is required")
	}
	return nil
}

// WorkerFullName validates a worker's full name.
func WorkerFullName(name string) error {
	return NonEmpty(name)
}

// TelegramID validates a worker's external identity at creation time.
func TelegramID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("telegram id is required")
	}
	return nil
}

// TelegramUsername validates a worker's external handle at creation time.
func TelegramUsername(handle string) error {
	return NonEmpty(handle)
}

// TaskTitleField returns a criterio validator for task titles.
func TaskTitleField(field, title string) error {
	return criterio.Run(field, title, TaskTitle)
}

// TaskTextField returns a criterio validator for task descriptions.
func TaskTextField(field, text string) error {
	return criterio.Run(field, text, TaskText)
}

// WorkerFullNameField returns a criterio validator for worker names.
func WorkerFullNameField(field, name string) error {
	return criterio.Run(field, name, WorkerFullName)
}
