package domain

type Summary struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}
