package command

import "testing"

func TestBuilder_SkipsEmptyFragments(t *testing.T) {
	b := NewBuilder(SepWord).Add("puppet", "", "apply").AddIf(false, "--noop").AddIf(true, "-d")

	if got := b.String(); got != "puppet apply -d" {
		t.Errorf("String() = %q, want %q", got, "puppet apply -d")
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
}

func TestBuilder_Separators(t *testing.T) {
	tests := []struct {
		name string
		sep  string
		want string
	}{
		{"word", SepWord, "a b"},
		{"and", SepAnd, "a && b"},
		{"line", SepLine, "a\nb"},
		{"command", SepCommand, "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBuilder(tt.sep).Add("a", "b").String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilder_Empty(t *testing.T) {
	if got := NewBuilder(SepAnd).String(); got != "" {
		t.Errorf("empty builder String() = %q, want empty", got)
	}
}

func TestBuilder_Addf(t *testing.T) {
	got := NewBuilder(SepWord).Addf("--modulepath=%s", "/tmp/kitchen/modules").String()
	if got != "--modulepath=/tmp/kitchen/modules" {
		t.Errorf("String() = %q", got)
	}
}

func TestSudo_Wrap(t *testing.T) {
	tests := []struct {
		name string
		sudo Sudo
		want string
	}{
		{"enabled", Sudo{Enabled: true, Command: "sudo -E"}, "sudo -E puppet"},
		{"disabled", Sudo{Enabled: false, Command: "sudo -E"}, "puppet"},
		{"empty command", Sudo{Enabled: true}, "puppet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sudo.Wrap("puppet"); got != tt.want {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bar", "bar"},
		{"web-01.example.com", "web-01.example.com"},
		{"two words", `'two words'`},
		{"", `''`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := QuoteValue(tt.in); got != tt.want {
				t.Errorf("QuoteValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
