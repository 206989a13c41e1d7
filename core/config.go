package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lending node config
type Config struct {
	App App       `json:"app"`
	DB  db.Config `json:"db"`
}

// App app config
type App struct {
	// SessionSecret signs and verifies access tokens
	SessionSecret string `json:"session_secret"`
	Location      string `json:"location"`
	Genesis       int64  `json:"genesis"`
}
