package region

import "testing"

func TestIsValid_KnownCodes(t *testing.T) {
	valid := []string{"CA", "NY", "DC", "ON", "QC", "AGU", "CMX", "ZAC"}
	for _, code := range valid {
		if !IsValid(code) {
			t.Errorf("IsValid(%q) = false, want true", code)
		}
	}
}

func TestIsValid_UnknownCodes(t *testing.T) {
	invalid := []string{"", "XX", "ZZZ", "ca", "California", "C"}
	for _, code := range invalid {
		if IsValid(code) {
			t.Errorf("IsValid(%q) = true, want false", code)
		}
	}
}

func TestName_ReturnsFullName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"CA", "California"},
		{"ON", "Ontario"},
		{"CMX", "Mexico City"},
	}

	for _, tt := range tests {
		got, ok := Name(tt.code)
		if !ok {
			t.Errorf("Name(%q) not found", tt.code)
			continue
		}
		if got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestName_UnknownCode(t *testing.T) {
	if _, ok := Name("XX"); ok {
		t.Error("Name(\"XX\") should not be found")
	}
}

func TestCount_CoversAllThreeCountries(t *testing.T) {
	// 米国51（DC含む）+ カナダ13 + メキシコ32
	want := 51 + 13 + 32
	if got := Count(); got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
}
