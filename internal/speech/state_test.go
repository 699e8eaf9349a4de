package speech

import "testing"

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want bool
	}{
		{"idle with keywords", Snapshot{Phase: Idle, Keywords: "hello"}, true},
		{"empty keywords", Snapshot{Phase: Idle}, false},
		{"whitespace keywords", Snapshot{Phase: Idle, Keywords: " \t\n "}, false},
		{"loading", Snapshot{Phase: Loading, Keywords: "hello"}, false},
		{"after failure", Snapshot{Phase: Failed, Keywords: "hello", Error: MsgNetwork}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}
