package domain

import "testing"

func TestDependencyType_IsValid(t *testing.T) {
	tests := []struct {
		name string
		typ  DependencyType
		want bool
	}{
		{"finish to start", FinishToStart, true},
		{"start to start", StartToStart, true},
		{"blocking", Blocking, true},
		{"empty", DependencyType(""), false},
		{"unknown", DependencyType("FINISH_TO_FINISH"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.IsValid(); got != tt.want {
				t.Errorf("DependencyType.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultDependencyType(t *testing.T) {
	if DefaultDependencyType != FinishToStart {
		t.Errorf("DefaultDependencyType = %v, want %v", DefaultDependencyType, FinishToStart)
	}
}
