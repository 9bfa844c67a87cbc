package models

type Patient struct {
	ID                   string     `json:"-" bson:"_id,omitempty"`
	PatientCode          string     `json:"patient_code" bson:"patient_code"`
	IdentificationType   string     `json:"identification_type,omitempty" bson:"identification_type,omitempty"`
	IdentificationNumber string     `json:"identification_number,omitempty" bson:"identification_number,omitempty"`
	Name                 string     `json:"name" bson:"name"`
	Age                  int        `json:"age" bson:"age"`
	Gender               string     `json:"gender" bson:"gender"`
	EntityInfo           EntityInfo `json:"entity_info" bson:"entity_info"`
	CareType             string     `json:"care_type" bson:"care_type"`
	Observations         string     `json:"observations,omitempty" bson:"observations,omitempty"`
	TimeModel            `bson:",inline"`
}

// Snapshot captures the patient fields a case embeds at creation time.
func (p *Patient) Snapshot() PatientInfo {
	return PatientInfo{
		PatientCode:          p.PatientCode,
		IdentificationType:   p.IdentificationType,
		IdentificationNumber: p.IdentificationNumber,
		Name:                 p.Name,
		Age:                  p.Age,
		Gender:               p.Gender,
		EntityInfo:           p.EntityInfo,
		CareType:             p.CareType,
		Observations:         p.Observations,
	}
}
