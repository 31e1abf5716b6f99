// Package manager implements the config manager orchestrator: it holds
// the current forwarding snapshot, applies the filter chain, validates,
// reconciles the cluster registry, compiles endpoints, and atomically
// publishes the result, retrying nothing on a post-startup failure but
// never losing the last good snapshot either.
package manager

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/zalando/routecore/changesignal"
	"github.com/zalando/routecore/clusterstate"
	"github.com/zalando/routecore/configprovider"
	"github.com/zalando/routecore/endpoint"
	"github.com/zalando/routecore/filterchain"
	"github.com/zalando/routecore/policy"
	"github.com/zalando/routecore/routespec"
	"github.com/zalando/routecore/snapshot"
	"github.com/zalando/routecore/transport"
)

// Options configures a Manager. Only Provider and Policy are required.
type Options struct {
	Provider    configprovider.Provider
	Policy      policy.Registry
	Filters     []filterchain.Filter
	Conventions []endpoint.Convention
	Log         *logrus.Entry
}

// Manager is the config manager orchestrator. The zero value is not
// usable; construct with New.
type Manager struct {
	provider configprovider.Provider
	policy   policy.Registry
	chain    *filterchain.Chain
	compiler *endpoint.Compiler
	registry *clusterstate.Registry
	factory  *transport.Factory
	holder   *snapshot.Holder
	log      *logrus.Entry

	state stateHolder

	// reloadMu serializes Filtering/Validating/Reconciling/Compiling/
	// Publishing; at most one reload is in those states at a time.
	reloadMu sync.Mutex

	mailbox    atomic.Pointer[reloadRequest]
	trigger    chan struct{}
	armed      atomic.Bool
	loopCtx    context.Context
	reloadFail chan error
}

type reloadRequest struct {
	routes   []routespec.RouteSpec
	clusters []routespec.ClusterSpec
}

// New builds a Manager. Call InitialLoad once before using Endpoints/
// ChangeToken.
func New(opts Options) *Manager {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	factory := transport.New(log)
	m := &Manager{
		provider:   opts.Provider,
		policy:     opts.Policy,
		chain:      filterchain.New(opts.Filters...),
		compiler:   endpoint.NewCompiler(opts.Conventions...),
		registry:   clusterstate.NewRegistry(factory),
		factory:    factory,
		holder:     snapshot.NewHolder(),
		log:        log,
		trigger:    make(chan struct{}, 1),
		reloadFail: make(chan error, 16),
	}
	return m
}

// State returns the current reload state machine position, for tests and
// diagnostics.
func (m *Manager) State() State {
	return m.state.get()
}

// ReloadFailures returns a channel of post-startup reload failures: every
// time a reload after InitialLoad fails, the error is sent here (and
// logged) while the previous snapshot keeps serving. The channel is
// buffered; slow consumers may miss bursts but never block a reload.
func (m *Manager) ReloadFailures() <-chan error {
	return m.reloadFail
}

// Endpoints returns the current snapshot's compiled endpoints. The first
// call arms the change-propagation path: subsequent upstream config
// changes will be subscribed to and will fire the manager's change
// signals.
func (m *Manager) Endpoints() []*endpoint.Endpoint {
	m.arm()
	return m.holder.Load().Endpoints
}

// ChangeToken returns the change signal for the currently published
// snapshot. It fires exactly once, the next time the snapshot is
// replaced. Like Endpoints, the first call also arms the
// change-propagation path, so a caller that only ever polls
// ChangeToken still gets live updates.
func (m *Manager) ChangeToken() *changesignal.Signal {
	m.arm()
	return m.holder.Load().ChangeSignal
}

// Clusters returns the live cluster registry view attached to the current
// snapshot.
func (m *Manager) Clusters() map[string]*clusterstate.ClusterState {
	return m.holder.Load().Clusters
}

func (m *Manager) arm() {
	if m.loopCtx == nil {
		return
	}
	if m.armed.CompareAndSwap(false, true) {
		go m.subscriptionLoop(m.loopCtx)
	}
}

// InitialLoad runs the startup sequence: fetch, filter, validate,
// reconcile, compile, publish. A failure here returns a single top-level
// error whose message is the fixed failure string and whose cause is the
// aggregate ReloadFailure; no snapshot has been published yet in that case.
func (m *Manager) InitialLoad(ctx context.Context) error {
	m.loopCtx = ctx

	m.state.set(StateFetching)
	routes, clusters, err := m.provider.Initial(ctx)
	if err != nil {
		m.state.set(StateFailed)
		agg := newReloadFailure()
		agg.add(&ConfigLoadError{Err: err})
		m.state.set(StateIdle)
		return &topLevelError{cause: agg}
	}

	if err := m.runReload(ctx, routes, clusters); err != nil {
		rf, ok := err.(*ReloadFailure)
		if !ok {
			agg := newReloadFailure()
			agg.add(err)
			rf = agg
		}
		return &topLevelError{cause: rf}
	}

	return nil
}

func (m *Manager) subscriptionLoop(ctx context.Context) {
	ch, err := configprovider.SubscribeWithBackoff(ctx, m.provider)
	if err != nil {
		m.log.WithError(err).Error("giving up subscribing to config provider")
		return
	}

	go m.reloadWorker(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			if update.Err != nil {
				m.log.WithError(update.Err).Warn("config provider reported an error; keeping previous snapshot")
				m.emitFailure(&ConfigLoadError{Err: update.Err})
				continue
			}
			m.mailbox.Store(&reloadRequest{routes: update.Routes, clusters: update.Clusters})
			select {
			case m.trigger <- struct{}{}:
			default:
			}
		}
	}
}

func (m *Manager) reloadWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.trigger:
			req := m.mailbox.Load()
			if req == nil {
				continue
			}
			if err := m.runReload(ctx, req.routes, req.clusters); err != nil {
				m.log.WithError(err).Error("reload failed; previous snapshot remains active")
				m.emitFailure(err)
			}
		}
	}
}

func (m *Manager) emitFailure(err error) {
	select {
	case m.reloadFail <- err:
	default:
		m.log.Warn("reload-failure channel full; dropping notification")
	}
}
