package ui

import (
	"testing"
	"time"
)

func TestStatusBar_TemporaryMessageSeqGuard(t *testing.T) {
	bar := NewStatusBarModel()

	// Short duration: the scheduled clear command is executed below.
	cmd1 := bar.SetTemporaryMessage("first", time.Millisecond)
	firstSeq := bar.messageSeq

	// A second message replaces the first before its clear fires.
	_ = bar.SetTemporaryMessage("second", time.Millisecond)

	// The stale clear from the first message must be ignored.
	if bar.ClearIfSeqMatch(firstSeq) {
		t.Error("stale clear should not wipe a newer message")
	}
	if bar.statusMessage != "second" {
		t.Errorf("statusMessage = %q, want %q", bar.statusMessage, "second")
	}

	// The current clear wipes it.
	if !bar.ClearIfSeqMatch(bar.messageSeq) {
		t.Error("matching clear should wipe the message")
	}
	if bar.statusMessage != "" {
		t.Errorf("statusMessage = %q, want empty", bar.statusMessage)
	}

	// The scheduled command carries the seq it was created with.
	if msg, ok := cmd1().(StatusBarClearMsg); !ok || msg.Seq != firstSeq {
		t.Errorf("cmd1() = %#v, want StatusBarClearMsg{Seq: %d}", cmd1(), firstSeq)
	}
}

func TestStatusBar_FlashReplacesHints(t *testing.T) {
	bar := NewStatusBarModel()
	bar.SetWidth(100)
	bar.SetState(PanelQueue, ModeNavigation)

	plain := bar.View()
	_ = bar.SetTemporaryMessage("✓ Declined #42", time.Second)
	flashed := bar.View()

	if plain == flashed {
		t.Error("flash message should change the rendered bar")
	}
}
