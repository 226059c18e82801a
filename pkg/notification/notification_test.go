package notification

import (
	"encoding/json"
	"io"
	gohttp "net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/souqdz/souq/pkg/http"
)

// captureTransport records the outgoing request and replies with a fixed status.
type captureTransport struct {
	status int
	req    *gohttp.Request
	body   []byte
}

func (t *captureTransport) RoundTrip(req *gohttp.Request) (*gohttp.Response, error) {
	t.req = req
	if req.Body != nil {
		t.body, _ = io.ReadAll(req.Body)
	}
	return &gohttp.Response{
		StatusCode: t.status,
		Header:     gohttp.Header{},
		Body:       io.NopCloser(strings.NewReader("ok")),
	}, nil
}

func TestSendSlackPostsThroughClient(t *testing.T) {
	ct := &captureTransport{status: 200}
	http.DefaultClient.Transport = ct
	defer http.ResetTransport()

	err := sendSlack(SlackData{Text: "new order", WebhookURL: "https://hooks.slack.test/T123"})
	require.NoError(t, err)
	require.NotNil(t, ct.req)
	require.Equal(t, gohttp.MethodPost, ct.req.Method)
	require.Equal(t, "https://hooks.slack.test/T123", ct.req.URL.String())
	require.Equal(t, "application/json", ct.req.Header.Get("Content-Type"))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(ct.body, &payload))
	require.Equal(t, "new order", payload["text"])
}

func TestSendSlackRejectsNon2xx(t *testing.T) {
	ct := &captureTransport{status: 500}
	http.DefaultClient.Transport = ct
	defer http.ResetTransport()

	err := sendSlack(SlackData{Text: "x", WebhookURL: "https://hooks.slack.test/T123"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestSendWebhookMergesHeaders(t *testing.T) {
	ct := &captureTransport{status: 204}
	http.DefaultClient.Transport = ct
	defer http.ResetTransport()

	err := sendWebhook(WebhookData{
		URL:     "https://example.test/hook",
		Payload: map[string]interface{}{"id": 7},
		Headers: map[string]string{"X-Signature": "abc"},
	})
	require.NoError(t, err)
	require.Equal(t, "abc", ct.req.Header.Get("X-Signature"))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(ct.body, &payload))
	require.EqualValues(t, 7, payload["id"])
}
