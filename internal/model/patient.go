package model

type MedicalRecord struct {
	RecordID     string `json:"recordId" bson:"recordId" validate:"required"`
	Date         int64  `json:"date" bson:"date" validate:"required"`
	FollowUpDate int64  `json:"followUpDate" bson:"followUpDate" validate:"required"`
	Treatment    string `json:"treatment" bson:"treatment" validate:"required"`
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Patient struct {
	Base          `bson:",inline"`
	Name          string          `json:"name" bson:"name"`
	PhoneNumber   string          `json:"phoneNumber" bson:"phoneNumber"`
	Dob           int64           `json:"dob" bson:"dob"`
	Description   string          `json:"description,omitempty" bson:"description,omitempty"`
	MedicalRecord []MedicalRecord `json:"medicalRecord" bson:"medicalRecord"`
}

type CreatePatientRequest struct {
	Name          string          `json:"name" validate:"required"`
	PhoneNumber   string          `json:"phoneNumber" validate:"required"`
	Dob           *int64          `json:"dob" validate:"required"`
	Description   string          `json:"description"`
	MedicalRecord []MedicalRecord `json:"medicalRecord" validate:"dive"`
}

// EditPatientRequest holds the editable patient fields. Omitted fields keep their
// stored value.
type EditPatientRequest struct {
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phoneNumber"`
	Dob           int64           `json:"dob"`
	Description   string          `json:"description"`
	MedicalRecord []MedicalRecord `json:"medicalRecord" validate:"omitempty,dive"`
}

// Merge fills every zero field of r from the stored patient.
func (r EditPatientRequest) Merge(p *Patient) EditPatientRequest {
	if r.Name == "" {
		r.Name = p.Name
	}
	if r.PhoneNumber == "" {
		r.PhoneNumber = p.PhoneNumber
	}
	if r.Dob == 0 {
		r.Dob = p.Dob
	}
	if r.Description == "" {
		r.Description = p.Description
	}
	if len(r.MedicalRecord) == 0 {
		r.MedicalRecord = p.MedicalRecord
	}
	return r
}

// Fields returns the merged values as a partial update.
func (r EditPatientRequest) Fields() map[string]interface{} {
	records := r.MedicalRecord
	if records == nil {
		records = []MedicalRecord{}
	}
	return map[string]interface{}{
		"name":          r.Name,
		"phoneNumber":   r.PhoneNumber,
		"dob":           r.Dob,
		"description":   r.Description,
		"medicalRecord": records,
	}
}
