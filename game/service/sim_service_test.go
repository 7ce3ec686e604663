package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/rover-sim/game/engine"
	"github.com/wricardo/rover-sim/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.SimConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}
	if config == nil {
		config = engine.DefaultSimConfig()
	}

	out := &bytes.Buffer{}
	sess := &service.Session{
		ID:             id,
		Controller:     engine.NewController(engine.BoardFromConfig(config), out),
		Output:         out,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	sess, exists := m.sessions[id]
	if !exists {
		return errors.New("session not found")
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.SimConfig
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.SimConfig{
			"tiny": {Name: "tiny", Description: "1x1 board", BoardWidth: 1, BoardHeight: 1},
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.SimConfig, error) {
	cfg, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return cfg, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, cfg := range m.configs {
		infos = append(infos, &service.ConfigInfo{
			ConfigID:    id,
			Name:        cfg.Name,
			BoardWidth:  cfg.BoardWidth,
			BoardHeight: cfg.BoardHeight,
		})
	}
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *engine.SimConfig {
	return engine.DefaultSimConfig()
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.SimConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() service.SimService {
	return service.NewSimService(NewMockSessionManager(), NewMockConfigManager())
}

func TestCreateSessionDefaultConfig(t *testing.T) {
	svc := newTestService()

	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if info.ID == "" {
		t.Error("expected a generated session ID")
	}
	if info.ConfigName != "default" {
		t.Errorf("config name = %q, want default", info.ConfigName)
	}
	if info.State.Placed {
		t.Error("fresh session should not have a placed rover")
	}
}

func TestCreateSessionNamedConfig(t *testing.T) {
	svc := newTestService()

	info, err := svc.CreateSession(context.Background(), "tiny")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if info.ConfigName != "tiny" {
		t.Errorf("config name = %q, want tiny", info.ConfigName)
	}
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateSession(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "tiny") {
		t.Errorf("error %q should list available configs", err)
	}
}

func TestExecPlaceAndReport(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	result, err := svc.Exec(ctx, info.ID, "PLACE 1,2,SOUTH")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if result.Done {
		t.Error("PLACE should not end the session")
	}
	if !result.State.Placed {
		t.Error("state should be placed after PLACE")
	}

	report, err := svc.Report(ctx, info.ID)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if want := "Rover Position: 1.00, 2.00, Direction: SOUTH"; report != want {
		t.Errorf("report = %q, want %q", report, want)
	}
}

func TestExecCapturesDiagnostics(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	result, err := svc.Exec(ctx, info.ID, "MOVE")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(result.Lines) != 1 || !strings.Contains(result.Lines[0], "place a rover first") {
		t.Errorf("lines = %v, want a no-rover diagnostic", result.Lines)
	}
}

func TestExecExit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	result, err := svc.Exec(ctx, info.ID, "EXIT")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !result.Done {
		t.Error("EXIT should report the session as done")
	}
}

func TestExecUnknownSession(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Exec(context.Background(), "ghost", "MOVE"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestReportWithoutRover(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	if _, err := svc.Report(ctx, info.ID); !errors.Is(err, service.ErrNoRover) {
		t.Errorf("Report returned %v, want ErrNoRover", err)
	}
}

func TestSessionIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, _ := svc.CreateSession(ctx, "")
	b, _ := svc.CreateSession(ctx, "")

	if _, err := svc.Exec(ctx, a.ID, "PLACE 1,1,NORTH"); err != nil {
		t.Fatalf("Exec: %v", err)
	}

	infoB, err := svc.GetSession(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if infoB.State.Placed {
		t.Error("placing in one session must not affect another")
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")
	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("expected error after deletion")
	}
}

func TestListSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.CreateSession(ctx, "")
	svc.CreateSession(ctx, "")

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("ListSessions returned %d, want 2", len(sessions))
	}
}
