package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertEnvelope decodes the response envelope, checks the embedded status
// and decodes Data into v when v is non-nil.
func AssertEnvelope(t *testing.T, resp *http.Response, expectedStatus int, v interface{}) Envelope {
	t.Helper()

	var env Envelope
	AssertJSONResponse(t, resp, &env)
	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected HTTP status")
	assert.Equal(t, expectedStatus, env.Status, "unexpected envelope status: %s", env.Message)

	if v != nil {
		require.NoError(t, json.Unmarshal(env.Data, v), "failed to decode envelope data")
	}
	return env
}
