package statuslog

import "testing"

func TestRecentBeforeWrap(t *testing.T) {
	l := New(4)
	l.Infof("one")
	l.Errorf("two: %d", 2)
	msgs := l.Recent()
	if len(msgs) != 2 {
		t.Fatalf("len(Recent()) = %d; expected 2", len(msgs))
	}
	if msgs[0].Text != "one" || msgs[0].Level != Info {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if msgs[1].Text != "two: 2" || msgs[1].Level != Error {
		t.Errorf("msgs[1] = %+v", msgs[1])
	}
}

func TestRecentWrapsInChronologicalOrder(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.Progressf("msg%d", i)
	}
	msgs := l.Recent()
	if len(msgs) != 3 {
		t.Fatalf("len(Recent()) = %d; expected 3", len(msgs))
	}
	want := []string{"msg2", "msg3", "msg4"}
	for i, w := range want {
		if msgs[i].Text != w {
			t.Errorf("msgs[%d].Text = %q; expected %q", i, msgs[i].Text, w)
		}
	}
}

func TestLevelString(t *testing.T) {
	if Info.String() != "INFO" || Error.String() != "ERROR" || Progress.String() != "PROGRESS" {
		t.Errorf("unexpected Level.String() outputs")
	}
}
