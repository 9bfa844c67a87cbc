package responses

type Login struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
