package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"micro_tutor_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"裸JSON", `{"a": 1}`, `{"a": 1}`},
		{"带json围栏", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"无语言标记围栏", "```\n[1, 2]\n```", `[1, 2]`},
		{"前后有说明文字", "好的，结果如下：\n{\"a\": 1}\n希望有帮助", `{"a": 1}`},
		{"数组带说明", "结果：[{\"q\": \"x\"}] 完毕", `[{"q": "x"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.input))
		})
	}
}

func newFakeAIServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Messages)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateCurriculumParsesResponse(t *testing.T) {
	reply := "```json\n{\"name\": \"Go编程\", \"description\": \"学Go\", \"curriculum\": [{\"title\": \"入门\", \"description\": \"基础\"}]}\n```"
	server := newFakeAIServer(t, reply)
	defer server.Close()

	svc := NewTutorService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	preview, err := svc.GenerateCurriculum("Go编程")
	require.NoError(t, err)
	assert.Equal(t, "Go编程", preview.Name)
	require.Len(t, preview.Curriculum, 1)
	assert.Equal(t, "入门", preview.Curriculum[0].Title)
}

func TestCompleteReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	svc := NewTutorService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key"})
	_, err := svc.GenerateCurriculum("Go编程")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestUpdateConfigSwitchesEndpoint(t *testing.T) {
	reply := `{"name": "X", "description": "", "curriculum": [{"title": "a"}]}`
	server := newFakeAIServer(t, reply)
	defer server.Close()

	svc := NewTutorService(config.AIConfig{BaseURL: "http://127.0.0.1:1", APIKey: "test-key"})
	_, err := svc.GenerateCurriculum("X")
	require.Error(t, err)

	svc.UpdateConfig(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})
	preview, err := svc.GenerateCurriculum("X")
	require.NoError(t, err)
	assert.Equal(t, "X", preview.Name)
}
