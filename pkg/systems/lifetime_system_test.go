package systems

import (
	"testing"

	"github.com/decker502/stay/pkg/components"
	"github.com/decker502/stay/pkg/ecs"
)

func TestLifetimeSystem(t *testing.T) {
	tests := []struct {
		name        string
		maxLifetime float64
		steps       []float64
		wantExpired bool
	}{
		{"未到期", 1.0, []float64{0.5}, false},
		{"正好到期", 1.0, []float64{0.5, 0.5}, true},
		{"大步长到期", 1.0, []float64{3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			sys := NewLifetimeSystem(em)
			id := em.CreateEntity()
			lifetime := &components.LifetimeComponent{MaxLifetime: tt.maxLifetime}
			em.AddComponent(id, lifetime)

			for _, dt := range tt.steps {
				sys.Update(dt)
			}
			if lifetime.IsExpired != tt.wantExpired {
				t.Errorf("IsExpired = %v, want %v", lifetime.IsExpired, tt.wantExpired)
			}

			em.RemoveMarkedEntities()
			if em.Exists(id) == tt.wantExpired {
				t.Errorf("entity exists = %v after cleanup", em.Exists(id))
			}
		})
	}
}

func TestLifetimeSystemCountsOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewLifetimeSystem(em)
	id := em.CreateEntity()
	em.AddComponent(id, &components.LifetimeComponent{MaxLifetime: 0.1})

	if n := sys.Update(1); n != 1 {
		t.Errorf("first update expired %d, want 1", n)
	}
	if n := sys.Update(1); n != 0 {
		t.Errorf("expired entity counted again: %d", n)
	}
}
