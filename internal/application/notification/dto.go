package notification

// SendEmailRequest represents an explicit transactional email send.
type SendEmailRequest struct {
	To      []string `json:"to" binding:"required,min=1,dive,email"`
	Subject string   `json:"subject" binding:"required,min=1,max=200"`
	Body    string   `json:"body" binding:"required,min=1"`
	HTML    bool     `json:"html"`
}
