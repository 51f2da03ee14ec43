package rooms

// Config tunes room creation and membership.
type Config struct {
	Capacity   int `yaml:"capacity"`
	CodeLength int `yaml:"code_length"`
	// CodeAttempts bounds how many generated codes are tried before giving up.
	CodeAttempts int `yaml:"code_attempts"`
}

func DefaultConfig() Config {
	return Config{Capacity: 4, CodeLength: 6, CodeAttempts: 5}
}

// CreateRoomRequest carries a new room's code and name. An empty code is
// generated.
type CreateRoomRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
