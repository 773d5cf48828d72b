package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vk/packlane/internal/ctxlog"
	"github.com/vk/packlane/internal/livereload"
	"github.com/vk/packlane/internal/pipeline"
)

// Session is a persistent watch session over one pipeline description. The
// engine re-runs the same description on every file change; the description
// itself never changes for the session's lifetime.
//
// State machine: Idle → Starting → Watching ⇄ Rebuilding, and any state →
// Terminated on a fatal event or shutdown. A failed rebuild emits an Error
// event and returns to Watching; only session-level failures are fatal.
type Session struct {
	events chan Event
	state  atomic.Int32

	buildCtx api.BuildContext
	reload   *livereload.Server

	closeOnce sync.Once
}

// Watch starts a watch session for the pipeline. Session setup failures
// (invalid entry, unbindable reload port) are returned as *FatalError; after
// a successful start all outcomes flow through the event channel. Cancelling
// ctx shuts the session down gracefully.
func Watch(ctx context.Context, desc pipeline.Description) (*Session, error) {
	logger := ctxlog.FromContext(ctx)

	s := &Session{events: make(chan Event, 64)}
	s.setState(StateStarting)

	opts := buildOptions(desc)
	opts.Plugins = append(opts.Plugins, s.lifecyclePlugin(ctx, desc))

	buildCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		s.setState(StateTerminated)
		return nil, &FatalError{Detail: ctxErr.Error()}
	}
	s.buildCtx = buildCtx

	if st, ok := desc.Find(pipeline.StageLiveReload).(pipeline.LiveReloadStage); ok {
		s.reload = livereload.New(st.Root, st.StaticDir, st.Addr)
		if err := s.reload.Start(ctx); err != nil {
			buildCtx.Dispose()
			s.setState(StateTerminated)
			return nil, &FatalError{Detail: err.Error()}
		}
	}

	if err := buildCtx.Watch(api.WatchOptions{}); err != nil {
		buildCtx.Dispose()
		s.setState(StateTerminated)
		return nil, &FatalError{Detail: err.Error()}
	}

	s.emit(Event{Kind: EventStart})
	s.setState(StateWatching)
	logger.Info("👀 Watch session started", "entry", desc.Entry)

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	return s, nil
}

// lifecyclePlugin hooks esbuild's rebuild cycle and translates it into the
// session's event stream.
func (s *Session) lifecyclePlugin(ctx context.Context, desc pipeline.Description) api.Plugin {
	var started time.Time
	var completed bool
	return api.Plugin{
		Name: "packlane-lifecycle",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				s.setState(StateRebuilding)
				started = time.Now()
				s.emit(Event{Kind: EventStageStart})
				return api.OnStartResult{}, nil
			})
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				defer s.setState(StateWatching)

				if len(result.Errors) > 0 {
					// A broken edit must not kill the dev loop.
					s.emit(Event{Kind: EventError, Detail: formatMessages(result.Errors)})
					return api.OnEndResult{}, nil
				}

				if err := runPostStages(ctx, desc); err != nil {
					s.emit(Event{Kind: EventError, Detail: err.Error()})
					return api.OnEndResult{}, nil
				}

				s.emit(Event{Kind: EventStageEnd, Duration: time.Since(started)})
				if !completed {
					// The initial build of the session.
					completed = true
					s.emit(Event{Kind: EventComplete})
				}
				if s.reload != nil {
					s.reload.Broadcast()
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

// Events returns the session's lifecycle event stream. The channel is closed
// after the End event.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Close shuts the session down gracefully: the watcher is disposed, the
// reload server stopped, and a final End event emitted.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.buildCtx != nil {
			s.buildCtx.Dispose()
		}
		if s.reload != nil {
			_ = s.reload.Close()
		}
		s.emit(Event{Kind: EventEnd})
		s.setState(StateTerminated)
		close(s.events)
	})
}

func (s *Session) setState(state SessionState) {
	s.state.Store(int32(state))
}

// emit delivers an event without ever blocking the bundler's callback
// goroutine. If the consumer has fallen 64 events behind, the oldest
// information is already stale and the event is dropped.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}
