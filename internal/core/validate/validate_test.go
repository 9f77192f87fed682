package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdeck/taskdeck/internal/core/domain"
)

func TestTaskTitle(t *testing.T) {
	assert.NoError(t, TaskTitle("Inspect panel"))
	assert.Error(t, TaskTitle(""))
	assert.Error(t, TaskTitle("   "))
}

func TestTaskText(t *testing.T) {
	assert.NoError(t, TaskText("Check alarm panel in building A"))
	assert.Error(t, TaskText("\t\n"))
}

func TestAssignableDepartment(t *testing.T) {
	assert.NoError(t, AssignableDepartment(domain.DepartmentBackend))
	assert.Error(t, AssignableDepartment(domain.DepartmentEmpty))
	assert.Error(t, AssignableDepartment(domain.Department(42)))
}

func TestWorkerIdentity(t *testing.T) {
	assert.NoError(t, TelegramID(123456))
	assert.Error(t, TelegramID(0))
	assert.Error(t, TelegramID(-5))

	assert.NoError(t, TelegramUsername("ivan_fire"))
	assert.Error(t, TelegramUsername(""))
}

func TestTaskTitleField(t *testing.T) {
	assert.NoError(t, TaskTitleField("title", "Install cameras"))
	assert.Error(t, TaskTitleField("title", ""))
}
