package entity

import "time"

// Draft is an email draft, optionally produced by the content generator.
//
// Status and SentAt are owned by the send workflow; plain updates never touch
// them.
type Draft struct {
	ID             string      `json:"id"`
	Subject        string      `json:"subject"`
	Body           string      `json:"body"`
	PromptUsed     string      `json:"prompt_used"`
	Status         DraftStatus `json:"status"`
	RecipientName  string      `json:"recipient_name,omitempty"`
	RecipientEmail string      `json:"recipient_email,omitempty"`
	Recipients     []string    `json:"recipients,omitempty"`
	SentAt         *time.Time  `json:"sent_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// GeneratedContent is the parsed output of the content generation client.
type GeneratedContent struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	PromptUsed string `json:"promptUsed"`
}
