package usecase

type CaptureLeadInput struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Source string `json:"source"`
}

type CaptureLeadOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateLeadInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type RecomputeScoreInput struct {
	Details map[string]int `json:"details"`
}
