package utils

import "testing"

// mockPointerInput 用于测试的 mock 指针输入
type mockPointerInput struct {
	x, y    int
	pressed bool
}

func (m *mockPointerInput) Position() (int, int) { return m.x, m.y }
func (m *mockPointerInput) Pressed() bool { return m.pressed }

func TestPointerTrackerEdges(t *testing.T) {
	in := &mockPointerInput{x: 10, y: 20}
	tr := NewPointerTracker(in)

	f := tr.Update()
	if f.Pressed || f.JustPressed || f.JustReleased {
		t.Fatalf("idle frame: %+v", f)
	}

	in.pressed = true
	f = tr.Update()
	if !f.JustPressed || !f.Pressed || f.PressX != 10 || f.PressY != 20 {
		t.Fatalf("press frame: %+v", f)
	}

	in.x, in.y = 30, 40
	f = tr.Update()
	if f.JustPressed || !f.Pressed || f.X != 30 {
		t.Fatalf("drag frame: %+v", f)
	}
	if f.PressX != 10 {
		t.Error("press position should be kept while dragging")
	}

	// 触摸释放时位置可能丢失，使用最后按住的位置
	in.pressed = false
	in.x, in.y = 0, 0
	f = tr.Update()
	if !f.JustReleased || f.X != 30 || f.Y != 40 {
		t.Fatalf("release frame: %+v", f)
	}

	f = tr.Update()
	if f.JustReleased || f.JustPressed {
		t.Errorf("edges should last one frame: %+v", f)
	}
	if tr.Frame() != f {
		t.Error("Frame() should return the last update")
	}
}
