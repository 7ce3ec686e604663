package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/wricardo/rover-sim/game/engine"
)

// ErrNoRover is returned by Report when the session has no placed rover.
var ErrNoRover = errors.New("no rover placed in session")

// simServiceImpl implements the SimService interface.
type simServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewSimService creates a new simulator service instance.
func NewSimService(sessions SessionManager, configs ConfigManager) SimService {
	return &simServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new simulation session using the named
// configuration, or the default when configName is empty.
func (s *simServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	config := s.configs.GetDefault()
	if configName != "" {
		loaded, err := s.configs.LoadConfig(configName)
		if err != nil {
			available, listErr := s.configs.ListConfigs()
			if listErr == nil && len(available) > 0 {
				var ids []string
				for _, cfg := range available {
					ids = append(ids, cfg.ConfigID)
				}
				return nil, fmt.Errorf("config '%s' not found, available configs: %v", configName, ids)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
		config = loaded
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information.
func (s *simServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all hosted sessions.
func (s *simServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *simServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Exec runs a single command line against a session's controller and
// returns the output lines it produced. Done reports whether the line
// was an EXIT.
func (s *simServiceImpl) Exec(ctx context.Context, sessionID, line string) (*ExecResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Output.Reset()
	sig := sess.Controller.ExecLine(line)

	result := &ExecResult{
		Lines: outputLines(sess.Output.String()),
		Done:  sig == engine.Stop,
		State: sess.Controller.Snapshot(),
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: failed to persist session %s: %v", sessionID, err)
	}

	return result, nil
}

// RunScript executes a command file against the session, equivalent to
// sending a FILE command line.
func (s *simServiceImpl) RunScript(ctx context.Context, sessionID, path string) (*ExecResult, error) {
	return s.Exec(ctx, sessionID, "FILE "+path)
}

// Report returns the rover's report line, or ErrNoRover when nothing has
// been placed yet.
func (s *simServiceImpl) Report(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	rover := sess.Controller.Rover()
	if rover == nil {
		return "", ErrNoRover
	}
	return rover.Report(), nil
}

// ListConfigs returns every available configuration.
func (s *simServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

func (s *simServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.Config.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.Controller.Snapshot(),
	}
}

// outputLines splits captured controller output into trimmed lines,
// dropping the trailing empty line left by the final newline.
func outputLines(raw string) []string {
	if raw == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	return lines
}
