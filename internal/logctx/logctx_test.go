package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandlerAddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(Handler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := context.Background()
	ctx = WithToolCallData(ctx, &ToolCallData{ToolName: "whoami"})
	ctx = WithAuthData(ctx, &AuthData{AuthType: "api_key", UserID: "u1"})

	log.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}

	tool, ok := rec["tool"].(map[string]any)
	if !ok || tool["name"] != "whoami" {
		t.Errorf("tool group = %v", rec["tool"])
	}
	authGroup, ok := rec["auth"].(map[string]any)
	if !ok || authGroup["type"] != "api_key" || authGroup["user_id"] != "u1" {
		t.Errorf("auth group = %v", rec["auth"])
	}
}

func TestHandlerPassesThroughBareContext(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(Handler{Handler: slog.NewJSONHandler(&buf, nil)})

	log.Info("plain")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if _, ok := rec["tool"]; ok {
		t.Error("unexpected tool group on bare context")
	}
	if rec["msg"] != "plain" {
		t.Errorf("msg = %v", rec["msg"])
	}
}
