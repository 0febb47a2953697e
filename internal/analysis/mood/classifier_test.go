package mood

import "testing"

func TestDetectHappy(t *testing.T) {
	tag, ok := Detect("我今天很开心")
	if !ok || tag != Happy {
		t.Fatalf("expected HAPPY, got %q ok=%v", tag, ok)
	}
}

func TestDetectEachCategory(t *testing.T) {
	cases := map[string]Tag{
		"考试前特别紧张":  Anxious,
		"这件事让我很难过": Sad,
		"我真的生气了":   Angry,
	}
	for text, want := range cases {
		tag, ok := Detect(text)
		if !ok || tag != want {
			t.Fatalf("text %q: expected %s, got %q ok=%v", text, want, tag, ok)
		}
	}
}

func TestDetectPrecedenceFirstRuleWins(t *testing.T) {
	// 同时含焦虑和开心关键词时，按规则顺序 HAPPY 在前。
	tag, ok := Detect("虽然有点焦虑，但总体还是开心的")
	if !ok || tag != Happy {
		t.Fatalf("expected HAPPY by rule order, got %q ok=%v", tag, ok)
	}

	// 焦虑与难过并存时，ANXIOUS 在 SAD 之前。
	tag, ok = Detect("又担心又难过")
	if !ok || tag != Anxious {
		t.Fatalf("expected ANXIOUS by rule order, got %q ok=%v", tag, ok)
	}
}

func TestDetectNoMatch(t *testing.T) {
	if tag, ok := Detect("今天中午吃什么"); ok {
		t.Fatalf("expected no mood, got %q", tag)
	}
	if tag, ok := Detect(""); ok {
		t.Fatalf("expected no mood for empty text, got %q", tag)
	}
}
