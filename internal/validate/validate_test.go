package validate

import "testing"

func TestEmail(t *testing.T) {
	if err := Email("user@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := Email("  user@example.com  "); err != nil {
		t.Fatalf("surrounding whitespace should be trimmed: %v", err)
	}
	if err := Email(""); err != ErrEmailRequired {
		t.Fatalf("empty email: got %v", err)
	}
	for _, bad := range []string{"user", "user@", "@example.com", "user@example", "a b@example.com"} {
		if err := Email(bad); err != ErrEmailFormat {
			t.Fatalf("Email(%q) = %v, want format error", bad, err)
		}
	}
}

func TestPassword(t *testing.T) {
	if err := Password("Abcdef1!"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := Password(""); err != ErrPasswordRequired {
		t.Fatalf("empty password: got %v", err)
	}
	if err := Password("Ab1!"); err != ErrPasswordLength {
		t.Fatalf("short password: got %v", err)
	}
	if err := Password("Abcdef1!Abcdef1!Abcdef1!"); err != ErrPasswordLength {
		t.Fatalf("long password: got %v", err)
	}
	for _, bad := range []string{"abcdefg1!", "ABCDEFG1!", "Abcdefgh!", "Abcdefgh1"} {
		if err := Password(bad); err != ErrPasswordCharset {
			t.Fatalf("Password(%q) = %v, want charset error", bad, err)
		}
	}
}

func TestPasswordPair(t *testing.T) {
	if err := PasswordPair("Abcdef1!", "Abcdef1!"); err != nil {
		t.Fatalf("matching pair rejected: %v", err)
	}
	if err := PasswordPair("Abcdef1!", "Abcdef1?"); err != ErrPasswordMismatch {
		t.Fatalf("mismatch: got %v", err)
	}
}

func TestNickname(t *testing.T) {
	if err := Nickname("ellim"); err != nil {
		t.Fatalf("valid nickname rejected: %v", err)
	}
	if err := Nickname(""); err != ErrNicknameRequired {
		t.Fatalf("empty nickname: got %v", err)
	}
	if err := Nickname("el lim"); err != ErrNicknameSpaces {
		t.Fatalf("spaced nickname: got %v", err)
	}
	if err := Nickname("elevenchars"); err != ErrNicknameLength {
		t.Fatalf("long nickname: got %v", err)
	}
}

func TestPostFields(t *testing.T) {
	if err := PostTitle("hello"); err != nil {
		t.Fatalf("valid title rejected: %v", err)
	}
	if err := PostTitle("   "); err != ErrTitleRequired {
		t.Fatalf("blank title: got %v", err)
	}
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaa" // 27 runes
	if err := PostTitle(long); err != ErrTitleLength {
		t.Fatalf("long title: got %v", err)
	}
	if err := PostContent("body"); err != nil {
		t.Fatalf("valid content rejected: %v", err)
	}
	if err := PostContent(""); err != ErrContentRequired {
		t.Fatalf("empty content: got %v", err)
	}
}
