package satellite

import (
	"fmt"
	"strings"

	"github.com/dstraub/satellite-plugin/pkg/config"
	"github.com/dstraub/satellite-plugin/pkg/log"
	"github.com/dstraub/satellite-plugin/pkg/rpc"
)

type recordedCall struct {
	method string
	args   []any
}

// fakeCaller scripts the XML-RPC endpoint and records every dispatched call.
type fakeCaller struct {
	handle func(method string, args []any) (any, error)
	calls  []recordedCall
	closed bool
}

func (f *fakeCaller) Call(method string, args ...any) (rpc.Value, error) {
	f.calls = append(f.calls, recordedCall{method: method, args: args})

	if f.handle == nil {
		return rpc.Value{}, fmt.Errorf("unexpected call '%s'", method)
	}
	raw, err := f.handle(method, args)
	if err != nil {
		return rpc.Value{}, err
	}
	return rpc.NewValue(raw), nil
}

func (f *fakeCaller) Close() error {
	f.closed = true
	return nil
}

func (f *fakeCaller) methods() []string {
	methods := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		methods = append(methods, call.method)
	}
	return methods
}

// newTestSession wires a session against the fake endpoint with a captured
// log sink.
func newTestSession(caller *fakeCaller, cfg *config.Config) (*Session, *strings.Builder) {
	if cfg == nil {
		cfg = &config.Config{
			URL:      "http://satellite.example.com",
			User:     "ci",
			Password: "secret",
		}
	}

	var sink strings.Builder
	return &Session{
		config: cfg,
		client: caller,
		log:    log.New(&sink),
	}, &sink
}

// loginHandler wraps a handler with the auth.login / auth.logout plumbing
// most tests need.
func loginHandler(token string, next func(method string, args []any) (any, error)) func(method string, args []any) (any, error) {
	return func(method string, args []any) (any, error) {
		switch method {
		case "auth.login":
			return token, nil
		case "auth.logout":
			return int64(1), nil
		default:
			if next == nil {
				return nil, fmt.Errorf("unexpected call '%s'", method)
			}
			return next(method, args)
		}
	}
}
