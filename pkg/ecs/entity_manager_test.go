package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPosition struct {
	X, Y float64
}

type testDrift struct {
	VX, VY float64
}

type testGlow struct {
	Alpha float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs should start at 1 and increase, got %d, %d", id1, id2)
	}
	if em.Count() != 2 {
		t.Errorf("Count = %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPosition{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPosition{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if p := comp.(*testPosition); p.X != 100 || p.Y != 200 {
		t.Errorf("Component data mismatch, got (%f, %f)", p.X, p.Y)
	}

	// 泛型访问得到同一个实例
	typed, ok := GetComponent[*testPosition](em, id)
	if !ok || typed != comp {
		t.Error("generic GetComponent should return the same pointer")
	}
	if _, ok := GetComponent[*testDrift](em, id); ok {
		t.Error("missing component should not be found")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(42, &testPosition{})
	if HasComponent[*testPosition](em, 42) {
		t.Error("component must not be attached to a non-existent entity")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPosition{})
	em.AddComponent(id, &testDrift{})

	RemoveComponent[*testDrift](em, id)
	if HasComponent[*testDrift](em, id) {
		t.Error("drift should be removed")
	}
	if !HasComponent[*testPosition](em, id) {
		t.Error("position should remain")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()
	for _, id := range []EntityID{id1, id2, id3} {
		em.AddComponent(id, &testPosition{})
	}

	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.DestroyEntity(id3)

	// 清理前实体仍存在
	if !em.Exists(id1) {
		t.Error("Entity should still exist before cleanup")
	}

	if removed := em.RemoveMarkedEntities(); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if em.Exists(id1) || em.Exists(id3) || !em.Exists(id2) {
		t.Error("only id2 should remain")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	var both []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPosition{})
		if i%2 == 0 {
			em.AddComponent(id, &testDrift{})
			both = append(both, id)
		}
	}
	loner := em.CreateEntity()
	em.AddComponent(loner, &testDrift{})

	got := GetEntitiesWith2[*testPosition, *testDrift](em)
	if !reflect.DeepEqual(got, both) {
		t.Errorf("GetEntitiesWith2 = %v, want %v (ascending)", got, both)
	}
	if n := len(GetEntitiesWith1[*testPosition](em)); n != 20 {
		t.Errorf("position entities = %d, want 20", n)
	}
	if n := len(GetEntitiesWith3[*testPosition, *testDrift, *testGlow](em)); n != 0 {
		t.Errorf("no entity has glow, got %d", n)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.DestroyEntity(id)
	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Count after Clear = %d", em.Count())
	}
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Error("pending destroys should be dropped by Clear")
	}
	if next := em.CreateEntity(); next == id {
		t.Error("IDs must not be reused after Clear")
	}
}
