package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAI_ReportsMissingConfiguration(t *testing.T) {
	app := newTestApp(t) // no GEMINI_API_KEY, AIService stays nil

	w := app.do(t, http.MethodPost, "/v1/ai/chat", map[string]interface{}{
		"message": "Obat apa yang cocok untuk sakit kepala?",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	assert.Equal(t, "GEMINI_API_KEY belum dikonfigurasi di server", body.Error)
}
