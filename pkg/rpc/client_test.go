package rpc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scalarResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><string>token-123</string></value></param></params></methodResponse>`

	recordsResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><struct>
<member><name>label</name><value><string>jboss-dev</string></value></member>
<member><name>id</name><value><int>42</int></value></member>
</struct></value>
<value><struct>
<member><name>label</name><value><string>jboss-qa</string></value></member>
<member><name>id</name><value><int>43</int></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`

	faultResponse = `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>2950</int></value></member>
<member><name>faultString</name><value><string>Either the password or username is incorrect</string></value></member>
</struct></value></fault></methodResponse>`
)

func respondWith(t *testing.T, body string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, body)
	}
}

func TestCallScalar(t *testing.T) {
	server := httptest.NewServer(respondWith(t, scalarResponse))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	defer client.Close()

	value, err := client.Call("auth.login", "ci", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", value.String())
}

func TestCallRecords(t *testing.T) {
	server := httptest.NewServer(respondWith(t, recordsResponse))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	defer client.Close()

	value, err := client.Call("channel.listMyChannels", "token-123")
	require.NoError(t, err)

	records := value.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "jboss-dev", records[0]["label"])
	assert.Equal(t, int64(42), records[0]["id"])
	assert.Equal(t, "jboss-qa", records[1]["label"])
}

func TestCallFault(t *testing.T) {
	server := httptest.NewServer(respondWith(t, faultResponse))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Call("auth.login", "ci", "wrong")
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "auth.login", transportErr.Method)
	assert.Contains(t, err.Error(), "calling 'auth.login'")
}

func TestCallConnectionRefused(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1/rpc/api")
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Call("api.getVersion")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestInsecureTransportIsScoped(t *testing.T) {
	server := httptest.NewTLSServer(respondWith(t, scalarResponse))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	defer client.Close()

	// The self-signed certificate must be accepted by this client...
	value, err := client.Call("auth.login", "ci", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", value.String())

	// ...while the process default transport still rejects it.
	defaultTransport, ok := http.DefaultTransport.(*http.Transport)
	require.True(t, ok)
	if defaultTransport.TLSClientConfig != nil {
		assert.False(t, defaultTransport.TLSClientConfig.InsecureSkipVerify)
	}

	_, err = http.Get(server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate")
}

func TestValueProjections(t *testing.T) {
	tests := []struct {
		testName string
		value    Value
		verify   func(t *testing.T, v Value)
	}{
		{
			testName: "String scalar",
			value:    NewValue("token"),
			verify: func(t *testing.T, v Value) {
				assert.Equal(t, "token", v.String())
				assert.Zero(t, v.Int())
			},
		},
		{
			testName: "Integer scalar",
			value:    NewValue(int64(1)),
			verify: func(t *testing.T, v Value) {
				assert.Equal(t, int64(1), v.Int())
				assert.Empty(t, v.String())
			},
		},
		{
			testName: "Boolean scalar",
			value:    NewValue(true),
			verify: func(t *testing.T, v Value) {
				assert.True(t, v.Bool())
			},
		},
		{
			testName: "Single record",
			value:    NewValue(map[string]any{"revision": int64(4)}),
			verify: func(t *testing.T, v Value) {
				assert.Equal(t, int64(4), v.Map()["revision"])
			},
		},
		{
			testName: "Record list",
			value:    NewValue([]any{map[string]any{"id": int64(42)}}),
			verify: func(t *testing.T, v Value) {
				require.Len(t, v.Records(), 1)
				assert.Equal(t, int64(42), v.Records()[0]["id"])
			},
		},
		{
			testName: "Mixed list is not a record list",
			value:    NewValue([]any{map[string]any{}, "oops"}),
			verify: func(t *testing.T, v Value) {
				assert.Nil(t, v.Records())
			},
		},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			test.verify(t, test.value)
		})
	}
}
