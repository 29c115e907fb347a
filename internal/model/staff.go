package model

import (
	"fmt"
)

// Role is the staff variant tag, stored under "role". Plain staff carry no role.
type Role string

const (
	RoleStaff  Role = ""
	RoleDoctor Role = "Doctor"
	RoleNurse  Role = "Nurse"
)

// Specialized reports whether the variant carries a specialization.
func (r Role) Specialized() bool {
	return r == RoleDoctor || r == RoleNurse
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStaff, RoleDoctor, RoleNurse:
		return Role(s), nil
	}
	return "", fmt.Errorf("role must be one of %q, %q or empty", RoleDoctor, RoleNurse)
}

type Schedule struct {
	ScheduleStartTime       string   `json:"scheduleStartTime" bson:"scheduleStartTime" validate:"required"`
	ScheduleEndTime         string   `json:"scheduleEndTime" bson:"scheduleEndTime" validate:"required"`
	WorkDays                []string `json:"workDays" bson:"workDays" validate:"required"`
	ScheduleWorkDescription string   `json:"scheduleWorkDescription" bson:"scheduleWorkDescription" validate:"required"`
}

// Staff is a plain staff member, a Doctor or a Nurse. The variant is fixed at creation.
type Staff struct {
	Base           `bson:",inline"`
	Role           Role     `json:"role,omitempty" bson:"role,omitempty"`
	Name           string   `json:"name" bson:"name"`
	PhoneNumber    string   `json:"phoneNumber" bson:"phoneNumber"`
	Dob            int64    `json:"dob" bson:"dob"`
	Description    string   `json:"description,omitempty" bson:"description,omitempty"`
	Schedule       Schedule `json:"schedule" bson:"schedule"`
	Specialization string   `json:"specialization,omitempty" bson:"specialization,omitempty"`
}

type CreateStaffRequest struct {
	Name                    string   `json:"name" validate:"required"`
	PhoneNumber             string   `json:"phoneNumber" validate:"required"`
	Dob                     *int64   `json:"dob" validate:"required"`
	Description             string   `json:"description"`
	ScheduleStartTime       string   `json:"scheduleStartTime" validate:"required"`
	ScheduleEndTime         string   `json:"scheduleEndTime" validate:"required"`
	WorkDays                []string `json:"workDays" validate:"required"`
	ScheduleWorkDescription string   `json:"scheduleWorkDescription" validate:"required"`
	Specialization          string   `json:"specialization"`
	Role                    string   `json:"role"`
}

// NewStaff builds the variant selected by req.Role.
func NewStaff(req CreateStaffRequest) (*Staff, error) {
	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	staff := &Staff{
		Role:        role,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
		Schedule: Schedule{
			ScheduleStartTime:       req.ScheduleStartTime,
			ScheduleEndTime:         req.ScheduleEndTime,
			WorkDays:                req.WorkDays,
			ScheduleWorkDescription: req.ScheduleWorkDescription,
		},
	}
	if req.Dob != nil {
		staff.Dob = *req.Dob
	}

	if role.Specialized() {
		if req.Specialization == "" {
			return nil, fmt.Errorf("%s specialization is required", role)
		}
		staff.Specialization = req.Specialization
	}
	return staff, nil
}

// EditStaffRequest lists the fields an edit may change. Role is not editable.
type EditStaffRequest struct {
	Name           *string   `json:"name"`
	PhoneNumber    *string   `json:"phoneNumber"`
	Dob            *int64    `json:"dob"`
	Description    *string   `json:"description"`
	Schedule       *Schedule `json:"schedule" validate:"omitempty"`
	Specialization *string   `json:"specialization"`
}

// Fields returns the partial update for s. Specialization is only applied to the
// Doctor and Nurse variants.
func (r EditStaffRequest) Fields(s *Staff) (map[string]interface{}, error) {
	set := make(map[string]interface{})
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.PhoneNumber != nil {
		set["phoneNumber"] = *r.PhoneNumber
	}
	if r.Dob != nil {
		set["dob"] = *r.Dob
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.Schedule != nil {
		set["schedule"] = *r.Schedule
	}
	if r.Specialization != nil {
		if !s.Role.Specialized() {
			return nil, fmt.Errorf("specialization only applies to %s and %s", RoleDoctor, RoleNurse)
		}
		if *r.Specialization == "" {
			return nil, fmt.Errorf("%s specialization is required", s.Role)
		}
		set["specialization"] = *r.Specialization
	}
	return set, nil
}
