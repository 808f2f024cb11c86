package notify

import "testing"

func TestParseChatID(t *testing.T) {
	id, err := ParseChatID("-1001234567890")
	if err != nil {
		t.Fatalf("ParseChatID failed: %v", err)
	}
	if id != -1001234567890 {
		t.Fatalf("expected -1001234567890, got %d", id)
	}

	if _, err := ParseChatID("@channel"); err == nil {
		t.Fatalf("expected error for non-numeric chat id")
	}
}

func TestSendChartRequiresToken(t *testing.T) {
	if err := SendChart("", "123", "chart.png", ""); err == nil {
		t.Fatalf("expected error without a bot token")
	}
}
