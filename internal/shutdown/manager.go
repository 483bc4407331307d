package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"photo-wall/internal/logger"
)

const DefaultStepTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

type component struct {
	name string
	impl Shutdownable
}

// Manager stops registered components in reverse registration order, once
type Manager struct {
	components  []component
	logger      logger.Logger
	stepTimeout time.Duration
	mu          sync.Mutex
	done        chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		logger:      log,
		stepTimeout: DefaultStepTimeout,
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetStepTimeout bounds how long a single component may take to stop
func (m *Manager) SetStepTimeout(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.stepTimeout = d
	}
}

func (m *Manager) Register(name string, impl Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component{name: name, impl: impl})
}

// Listen shuts down on SIGINT/SIGTERM and then calls onSignal, if set
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
		signal.Stop(sigChan)
	}()
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			c.impl.Shutdown()
		}()

		select {
		case <-stopped:
			m.logger.Debug("ShutdownManager", "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(m.stepTimeout):
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
				"timeout":   m.stepTimeout.String(),
			})
		}
	}

	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled when shutdown begins
func (m *Manager) Context() context.Context {
	return m.ctx
}
