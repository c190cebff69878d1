package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles known to the portal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Action enumerates the permission-gated operations exposed by the API.
type Action string

const (
	ActionManageExams     Action = "manage_exams"
	ActionManageQuestions Action = "manage_questions"
	ActionAssignExams     Action = "assign_exams"
	ActionViewReports     Action = "view_reports"
	ActionGradeResponses  Action = "grade_responses"
	ActionTakeExams       Action = "take_exams"
	ActionManageStudents  Action = "manage_students"
	ActionManageTeachers  Action = "manage_teachers"
)

var rolePermissions = map[Role]map[Action]struct{}{
	RoleAdmin: {
		ActionManageExams:     {},
		ActionManageQuestions: {},
		ActionAssignExams:     {},
		ActionViewReports:     {},
		ActionGradeResponses:  {},
		ActionManageStudents:  {},
		ActionManageTeachers:  {},
	},
	RoleTeacher: {
		ActionManageExams:     {},
		ActionManageQuestions: {},
		ActionAssignExams:     {},
		ActionViewReports:     {},
		ActionGradeResponses:  {},
		ActionManageStudents:  {},
	},
	RoleStudent: {
		ActionTakeExams: {},
	},
}

// ParseRole normalizes a raw role string into a Role.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Can reports whether the role is permitted to perform the action.
func (r Role) Can(action Action) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	_, allowed := perms[action]
	return allowed
}

func (r Role) String() string {
	return string(r)
}
