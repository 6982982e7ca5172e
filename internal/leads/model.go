package leads

import "time"

// Lead is a contact-page or welcome-popup inquiry.
type Lead struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	FormType  string    `json:"formType"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
