package ui

import (
	"strings"
	"testing"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Action
		wantErr bool
	}{
		{
			name:  "progress",
			input: "f:progress:7",
			want:  Action{Screen: ScreenProgress, UserID: 7},
		},
		{
			name:  "profile",
			input: "f:profile:12",
			want:  Action{Screen: ScreenProfile, UserID: 12},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong prefix", input: "s:progress:7", wantErr: true},
		{name: "unknown screen", input: "f:settings:7", wantErr: true},
		{name: "missing user", input: "f:progress", wantErr: true},
		{name: "zero user", input: "f:progress:0", wantErr: true},
		{name: "signed user", input: "f:progress:-3", wantErr: true},
		{name: "extra part", input: "f:progress:3:1", wantErr: true},
		{name: "too long", input: "f:progress:" + strings.Repeat("9", 60), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallbackData(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestBuildCallbacks(t *testing.T) {
	data, err := BuildProgressCallback(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != "f:progress:42" {
		t.Fatalf("unexpected progress callback %q", data)
	}
	action, err := ParseCallbackData(data)
	if err != nil || action.Screen != ScreenProgress || action.UserID != 42 {
		t.Fatalf("callback did not decode back: %+v, %v", action, err)
	}

	if _, err := BuildProfileCallback(0); err == nil {
		t.Fatal("expected error for zero user id")
	}
}
