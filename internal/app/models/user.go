package models

// User is an authenticable account tied to a staff catalog entry.
type User struct {
	ID        string `json:"-" bson:"_id,omitempty"`
	Username  string `json:"username" bson:"username"`
	Password  string `json:"-" bson:"password"`
	Name      string `json:"name" bson:"name"`
	Role      string `json:"role" bson:"role"`
	StaffCode string `json:"staff_code,omitempty" bson:"staff_code,omitempty"`
	IsActive  bool   `json:"is_active" bson:"is_active"`
	TimeModel `bson:",inline"`
}

// Principal is the verified identity the services consume. The transport
// layer resolves it from the session before any gated operation runs.
type Principal struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	StaffCode string `json:"staff_code,omitempty"`
}
