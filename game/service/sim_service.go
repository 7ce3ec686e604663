package service

import (
	"bytes"
	"context"
	"time"

	"github.com/wricardo/rover-sim/game/engine"
)

// SimService defines all simulator operations exposed to transports.
type SimService interface {
	// Session management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Command execution
	Exec(ctx context.Context, sessionID, line string) (*ExecResult, error)
	RunScript(ctx context.Context, sessionID, path string) (*ExecResult, error)
	Report(ctx context.Context, sessionID string) (string, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id string, config *engine.SimConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles simulation configuration loading.
type ConfigManager interface {
	LoadConfig(name string) (*engine.SimConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.SimConfig
	SaveConfig(name string, config *engine.SimConfig) error
}

// Session represents one hosted simulation. The controller writes its
// diagnostics and command output into Output, which Exec drains after
// each command.
type Session struct {
	ID             string
	Controller     *engine.Controller
	Output         *bytes.Buffer
	Config         *engine.SimConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo provides information about a hosted session.
type SessionInfo struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	State          engine.Snapshot `json:"state"`
}

// ExecResult contains the outcome of executing one command line.
type ExecResult struct {
	Lines []string        `json:"lines"`
	Done  bool            `json:"done"`
	State engine.Snapshot `json:"state"`
}

// ConfigInfo provides information about an available configuration.
type ConfigInfo struct {
	Filename    string  `json:"filename"`
	ConfigID    string  `json:"config_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`
}
