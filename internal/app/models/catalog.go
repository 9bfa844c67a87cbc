package models

// Entity is a payer/institution (insurer, hospital).
type Entity struct {
	ID         string `json:"-" bson:"_id,omitempty"`
	EntityCode string `json:"entity_code" bson:"entity_code"`
	Name       string `json:"name" bson:"name"`
	IsActive   bool   `json:"is_active" bson:"is_active"`
	TimeModel  `bson:",inline"`
}

// Test is a catalog-defined laboratory technique.
type Test struct {
	ID        string `json:"-" bson:"_id,omitempty"`
	TestCode  string `json:"test_code" bson:"test_code"`
	Name      string `json:"name" bson:"name"`
	IsActive  bool   `json:"is_active" bson:"is_active"`
	TimeModel `bson:",inline"`
}

// Pathologist is the signing staff catalog entry. SignatureRef points at the
// blob store object; the image itself is never held here.
type Pathologist struct {
	ID              string `json:"-" bson:"_id,omitempty"`
	PathologistCode string `json:"pathologist_code" bson:"pathologist_code"`
	Name            string `json:"name" bson:"name"`
	Email           string `json:"email" bson:"email"`
	MedicalLicense  string `json:"medical_license,omitempty" bson:"medical_license,omitempty"`
	IsActive        bool   `json:"is_active" bson:"is_active"`
	SignatureRef    string `json:"signature_ref,omitempty" bson:"signature_ref,omitempty"`
	TimeModel       `bson:",inline"`
}

func (p *Pathologist) Snapshot() PathologistInfo {
	return PathologistInfo{
		ID:   p.PathologistCode,
		Name: p.Name,
	}
}

// Personnel covers residents, auxiliaries and billing staff; the case engine
// only ever reads these.
type Personnel struct {
	ID        string `json:"-" bson:"_id,omitempty"`
	Code      string `json:"code" bson:"code"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Role      string `json:"role" bson:"role"`
	IsActive  bool   `json:"is_active" bson:"is_active"`
	TimeModel `bson:",inline"`
}
