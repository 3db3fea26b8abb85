package migration

import (
	"coachdesk/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlanDefinitionModel{},
		&models.PlanAssignmentModel{},
		&models.CapacityTokenModel{},
		&models.StudentModel{},
	}
}
