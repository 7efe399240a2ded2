package domain

// UserProfile is produced by onboarding and stored with the snapshot
type UserProfile struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Age       int    `json:"age" validate:"required,min=1,max=120"`
	Gender    string `json:"gender" validate:"required,oneof=boy girl"`
}

// DisplayName returns the name shown in greetings, falling back to "Player"
func (p *UserProfile) DisplayName() string {
	if p == nil || p.FirstName == "" {
		return "Player"
	}
	return p.FirstName
}
