package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func withTestFS(t *testing.T) {
	t.Helper()
	Init(fstest.MapFS{
		"story.yaml":          {Data: []byte("recipient: test\n")},
		"shaders/hearts.kage": {Data: []byte("package main\n")},
		"shaders/blob.kage":   {Data: []byte("package main\n")},
	})
	t.Cleanup(func() {
		contentFS = nil
		initialized = false
	})
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("assets/story.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ReadFile before Init: got %v, want ErrNotInitialized", err)
	}
	if Exists("assets/story.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	withTestFS(t)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "assets/story.yaml", "recipient: test\n", false},
		{"带 ./ 前缀", "./assets/story.yaml", "recipient: test\n", false},
		{"缺少前缀", "story.yaml", "", true},
		{"不存在的文件", "assets/missing.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}

func TestGlobKeepsPrefix(t *testing.T) {
	withTestFS(t)

	matches, err := Glob("assets/shaders/*.kage")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 shader matches, got %v", matches)
	}
	for _, m := range matches {
		if !Exists(m) {
			t.Errorf("Glob result %q should exist", m)
		}
	}
}
