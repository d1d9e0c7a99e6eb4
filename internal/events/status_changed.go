package events

import "github.com/szoloth/jobpilot/internal/domain/models"

const StatusChangedTopic = "pipeline:status_changed"

type StatusChanged struct {
	CompanyKey  string
	CompanyName string
	From        models.Status
	To          models.Status
}
