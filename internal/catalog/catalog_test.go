package catalog

import "testing"

func TestCurrencyID(t *testing.T) {
	tests := []struct {
		code   string
		wantID int
		wantOK bool
	}{
		{"USD", 1, true},
		{"EUR", 3, true},
		{"ARS", 34, true},
		{"UYU", 41, true},
		{"usd", 0, false},
		{"XYZ", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			id, ok := CurrencyID(tt.code)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("CurrencyID(%q) = (%d, %v), want (%d, %v)", tt.code, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestDefaultCurrencyID(t *testing.T) {
	if got := DefaultCurrencyID(); got != 1 {
		t.Errorf("DefaultCurrencyID() = %d, want 1", got)
	}
}

func TestValidCurrencyID(t *testing.T) {
	if !ValidCurrencyID(23) {
		t.Error("ValidCurrencyID(23) = false, want true")
	}
	for _, id := range []int{0, 33, 36, 42, -1} {
		if ValidCurrencyID(id) {
			t.Errorf("ValidCurrencyID(%d) = true, want false", id)
		}
	}
}

func TestCurrencies_ReturnsCopy(t *testing.T) {
	c := Currencies()
	c["USD"] = 99

	if id, _ := CurrencyID("USD"); id != 1 {
		t.Errorf("catalog mutated through Currencies(): USD = %d", id)
	}
}

func TestFormats(t *testing.T) {
	if got := DefaultFormat(); got != FormatJSON {
		t.Errorf("DefaultFormat() = %q, want %q", got, FormatJSON)
	}

	for _, f := range []string{"json", "vdf", "xml"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false, want true", f)
		}
	}
	for _, f := range []string{"JSON", "yaml", ""} {
		if ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = true, want false", f)
		}
	}

	list := Formats()
	list[0] = "yaml"
	if DefaultFormat() != FormatJSON {
		t.Error("catalog mutated through Formats()")
	}
}
