package rpc

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"
)

// Caller issues a single XML-RPC call and returns the decoded result tree.
type Caller interface {
	Call(method string, args ...any) (Value, error)
	Close() error
}

// TransportError wraps any network, protocol or fault failure of a call.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling '%s': %s", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client is an XML-RPC client for the Satellite API endpoint.
type Client struct {
	endpoint string
	rpc      *xmlrpc.Client
}

// NewClient connects the given endpoint. Satellite installations typically
// run with a self-signed CA, so for https endpoints the client carries its
// own permissive TLS transport. The process-wide http.DefaultTransport is
// left untouched.
func NewClient(endpoint string) (*Client, error) {
	var transport http.RoundTripper
	if strings.HasPrefix(endpoint, "https://") {
		transport = InsecureTransport()
	}

	client, err := xmlrpc.NewClient(endpoint, transport)
	if err != nil {
		return nil, fmt.Errorf("creating XML-RPC client for '%s': %w", endpoint, err)
	}

	return &Client{endpoint: endpoint, rpc: client}, nil
}

// InsecureTransport clones the default transport and disables server
// certificate and hostname verification on the clone only.
func InsecureTransport() *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- self-signed Satellite CA
	return transport
}

// Call invokes the remote method. The reply is the decoded value tree:
// scalars, maps, or lists thereof. Faults and I/O errors surface as a
// *TransportError; the call is never retried.
func (c *Client) Call(method string, args ...any) (Value, error) {
	zap.S().Debugf("XML-RPC call '%s' with %d argument(s)", method, len(args))

	var reply any
	if err := c.rpc.Call(method, args, &reply); err != nil {
		return Value{}, &TransportError{Method: method, Err: err}
	}

	return Value{raw: reply}, nil
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
