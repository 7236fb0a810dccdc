package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	s.app.mu.RLock()
	last, lastErr, runs := s.app.last, s.app.lastErr, s.app.runs
	watching := s.app.activeWatcher != nil
	s.app.mu.RUnlock()

	switch {
	case runs == 0:
		status.Components["analysis"] = "pending"
	case lastErr != nil:
		status.Status = "degraded"
		status.Components["analysis"] = "failed: " + lastErr.Error()
	default:
		status.Components["analysis"] = fmt.Sprintf("ok (%d nodes, %d edges)", last.Graph.NodeCount(), last.Graph.EdgeCount())
		status.Components["last_run"] = last.RunID
	}

	if s.app.Config.Watch.Enabled {
		if watching {
			status.Components["watcher"] = "ok"
		} else {
			status.Status = "degraded"
			status.Components["watcher"] = "missing but enabled in config"
		}
	}
	return status
}
