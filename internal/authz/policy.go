// Package authz holds the role capability table. Every role-gated service
// operation consults Allowed exactly once at its entry point; ownership and
// team-relationship checks stay next to the loaded entities in the services.
package authz

import "github.com/swapnilgupta14/synapse-api/internal/models"

type Operation string

const (
	OpManageOrganisations       Operation = "organisation.manage"
	OpManageOrganisationMembers Operation = "organisation.manage_members"
	OpManageProjects            Operation = "projects.manage"
	OpManageTeams               Operation = "teams.manage"
	OpBulkUpdateTasks           Operation = "tasks.bulk_update"
	OpReassignTasks             Operation = "tasks.reassign"
	OpArchiveTasks              Operation = "tasks.archive"
	OpUpdateTaskPriorities      Operation = "tasks.update_priorities"
	OpViewStatistics            Operation = "tasks.statistics"
)

var policy = map[models.UserRole]map[Operation]bool{
	models.RoleAdmin: {
		OpManageOrganisations:       true,
		OpManageOrganisationMembers: true,
		OpManageProjects:            true,
		OpManageTeams:               true,
		OpBulkUpdateTasks:           true,
		OpReassignTasks:             true,
		OpArchiveTasks:              true,
		OpUpdateTaskPriorities:      true,
		OpViewStatistics:            true,
	},
	models.RoleOrganisation: {
		OpManageOrganisations:       true,
		OpManageOrganisationMembers: true,
		OpManageProjects:            true,
		OpManageTeams:               true,
		OpReassignTasks:             true,
	},
	models.RoleProjectManager: {
		OpManageProjects: true,
		OpManageTeams:    true,
		OpReassignTasks:  true,
	},
	models.RoleTeamManager: {
		OpManageTeams:     true,
		OpBulkUpdateTasks: true,
		OpReassignTasks:   true,
	},
	models.RoleTeamMember: {},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role models.UserRole, op Operation) bool {
	caps, ok := policy[role]
	if !ok {
		return false
	}
	return caps[op]
}
