package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGroq_Generate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "Deploy more fast chargers downtown."}}]}`))
	}))
	defer srv.Close()

	client := NewGroqClient(srv.URL, "sk-test", "", 5*time.Second, testLogger())
	out, err := client.Generate(context.Background(), "You are an EV policy analyst.", "Summarize the findings.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != DefaultGroqModel {
		t.Errorf("expected default model, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
	if out != "Deploy more fast chargers downtown." {
		t.Errorf("unexpected completion: %q", out)
	}
}

func TestGroq_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := NewGroqClient(srv.URL, "sk-test", "custom-model", 5*time.Second, testLogger())
	if _, err := client.Generate(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
