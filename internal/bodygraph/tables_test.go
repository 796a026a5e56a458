package bodygraph

import (
	"testing"
)

func TestCenterGates_PartitionAllGates(t *testing.T) {
	owner := make(map[int]Center)
	for _, c := range Centers {
		gates := GatesOf(c)
		if len(gates) == 0 {
			t.Errorf("center %s owns no gates", c)
		}
		for _, g := range gates {
			if prev, dup := owner[g]; dup {
				t.Errorf("gate %d owned by %s and %s", g, prev, c)
			}
			owner[g] = c
		}
	}
	for g := 1; g <= GateCount; g++ {
		if _, ok := owner[g]; !ok {
			t.Errorf("gate %d has no center", g)
		}
	}
}

func TestChannels_JoinDifferentCenters(t *testing.T) {
	if len(channels) != 36 {
		t.Fatalf("len(channels) = %d, want 36", len(channels))
	}
	for _, ch := range channels {
		a, b, err := ch.Centers()
		if err != nil {
			t.Fatalf("channel %s: %v", ch, err)
		}
		if a == b {
			t.Errorf("channel %s stays inside %s", ch, a)
		}
		if ch[0] >= ch[1] {
			t.Errorf("channel %s not stored low gate first", ch)
		}
	}
}

func TestChannels_CoverEveryGate(t *testing.T) {
	uses := make(map[int]int)
	for _, ch := range channels {
		uses[ch[0]]++
		uses[ch[1]]++
	}
	for g := 1; g <= GateCount; g++ {
		want := 1
		switch g {
		case 10, 20, 34, 57:
			want = 3
		}
		if uses[g] != want {
			t.Errorf("gate %d used by %d channels, want %d", g, uses[g], want)
		}
	}
}

func TestPartners(t *testing.T) {
	if got := Partners(1); len(got) != 1 || got[0] != 8 {
		t.Errorf("Partners(1) = %v, want [8]", got)
	}
	if got := Partners(34); len(got) != 3 {
		t.Errorf("Partners(34) = %v, want 3 partners", got)
	}
}

func TestCenterOf_Unknown(t *testing.T) {
	if _, err := CenterOf(0); err == nil {
		t.Error("CenterOf(0) should fail")
	}
}
