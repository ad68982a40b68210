package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/commonlog"
	"github.com/vantaboard/class-fold/fold"
	"github.com/vantaboard/class-fold/i18n"
	"github.com/vantaboard/class-fold/state"
)

var log = commonlog.GetLogger("classfold.server")

// Session is the state of one client connection.
type Session struct {
	Docs       *state.Docs
	Controller *fold.Controller
	Editor     *ClientEditor

	lock   sync.Mutex
	config Configuration
	ranges *cache.Cache

	ctx    context.Context
	cancel context.CancelFunc
	tasks  sync.WaitGroup
}

func NewSession(config Configuration) (*Session, error) {
	options, err := config.Options()

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	editor := &ClientEditor{}

	return &Session{
		Docs:       &state.Docs{},
		Controller: fold.NewController(editor, options),
		Editor:     editor,
		config:     config,
		ranges:     cache.New(5*time.Minute, 10*time.Minute),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

func (s *Session) Config() Configuration {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.config
}

// Configure decodes src over the current configuration and applies it.
// On error nothing changes.
func (s *Session) Configure(src any) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	config, err := s.config.Merge(src)

	if err != nil {
		return err
	}

	options, err := config.Options()

	if err != nil {
		return err
	}

	if config.Locale != "" && config.Locale != i18n.Locale() {
		err = i18n.SetLocale(config.Locale)

		if err != nil {
			return err
		}
	}

	s.config = config
	s.spawn("clear decorations", s.Controller.SetOptions(options))
	s.ranges.Flush()

	log.Debugf("configuration %+v", config)

	return nil
}

// Connect starts serving stream. The returned connection is closed by the
// client or by an exit notification.
func (s *Session) Connect(ctx context.Context, stream jsonrpc2.ObjectStream) *jsonrpc2.Conn {
	handler := CreateRequestHandler(s)

	return jsonrpc2.NewConn(
		ctx,
		stream,
		jsonrpc2.HandlerWithError(handler.RpcHandle),
		jsonrpc2.SetLogger(rpcLogger{}),
	)
}

// Close cancels running pipelines and waits for them.
func (s *Session) Close() {
	s.cancel()
	s.tasks.Wait()
}

// Wait blocks until every spawned pipeline has returned.
func (s *Session) Wait() {
	s.tasks.Wait()
}

// spawn runs task off the read loop so it can call the client and wait
// for its answer.
func (s *Session) spawn(name string, task func(context.Context) error) {
	if task == nil {
		return
	}

	s.tasks.Add(1)

	go func() {
		defer s.tasks.Done()

		err := task(s.ctx)

		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("%s: %s", name, err.Error())
		}
	}()
}

type rpcLogger struct{}

func (rpcLogger) Printf(format string, v ...any) {
	log.Warning(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
