package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func staffRequest(role string) CreateStaffRequest {
	dob := int64(631152000000)
	return CreateStaffRequest{
		Name:                    "Dr. Lan",
		PhoneNumber:             "0901234567",
		Dob:                     &dob,
		ScheduleStartTime:       "08:00",
		ScheduleEndTime:         "17:00",
		WorkDays:                []string{"Mon", "Tue"},
		ScheduleWorkDescription: "Outpatient",
		Specialization:          "Cardiology",
		Role:                    role,
	}
}

func TestNewStaffVariants(t *testing.T) {
	doctor, err := NewStaff(staffRequest("Doctor"))
	require.NoError(t, err)
	assert.Equal(t, RoleDoctor, doctor.Role)
	assert.Equal(t, "Cardiology", doctor.Specialization)

	plain, err := NewStaff(staffRequest(""))
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, plain.Role)
	assert.Empty(t, plain.Specialization)

	raw, err := json.Marshal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "specialization")
	assert.NotContains(t, string(raw), `"role"`)

	_, err = NewStaff(staffRequest("Janitor"))
	assert.Error(t, err)

	req := staffRequest("Nurse")
	req.Specialization = ""
	_, err = NewStaff(req)
	assert.EqualError(t, err, "Nurse specialization is required")
}

func TestEditStaffFieldsNeverTouchRole(t *testing.T) {
	name := "New name"
	spec := "Pediatrics"
	doctor := &Staff{Role: RoleDoctor}

	set, err := EditStaffRequest{Name: &name, Specialization: &spec}.Fields(doctor)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "New name", "specialization": "Pediatrics"}, set)
	assert.NotContains(t, set, "role")

	_, err = EditStaffRequest{Specialization: &spec}.Fields(&Staff{})
	assert.Error(t, err)
}

func TestEditPatientMerge(t *testing.T) {
	stored := &Patient{
		Name:        "Minh",
		PhoneNumber: "0909",
		Dob:         946684800000,
		Description: "allergic",
		MedicalRecord: []MedicalRecord{
			{RecordID: "r1", Date: 1, FollowUpDate: 2, Treatment: "rest"},
		},
	}

	merged := EditPatientRequest{PhoneNumber: "0111"}.Merge(stored)

	assert.Equal(t, "Minh", merged.Name)
	assert.Equal(t, "0111", merged.PhoneNumber)
	assert.Equal(t, stored.Dob, merged.Dob)
	assert.Equal(t, "allergic", merged.Description)
	assert.Equal(t, stored.MedicalRecord, merged.MedicalRecord)
}

func TestBaseEncodesInline(t *testing.T) {
	subject := Subject{Name: "Anatomy"}
	subject.ID = primitive.NewObjectID()

	raw, err := bson.Marshal(subject)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, subject.ID, doc["_id"])
	assert.Equal(t, "Anatomy", doc["name"])
	assert.NotContains(t, doc, "deletedAt")
	assert.NotContains(t, doc, "createdBy")
}

func TestPopulatedChapterJSON(t *testing.T) {
	subject := &Subject{Name: "Anatomy"}
	chapter := PopulatedChapter{Chapter: Chapter{Name: "Bones"}, Subject: subject}

	raw, err := json.Marshal(chapter)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "Bones", out["name"])
	assert.Equal(t, "Anatomy", out["subject"].(map[string]interface{})["name"])
}
