package devicestate

import (
	"testing"
)

func TestCodeTableRoundTrip(t *testing.T) {
	tables := []struct {
		name  string
		table *codeTable
	}{
		{"operation mode", &operationModeTable},
		{"horizontal vane", &vaneHorizontalTable},
		{"vertical vane", &vaneVerticalTable},
	}

	for _, tt := range tables {
		t.Run(tt.name, func(t *testing.T) {
			for _, pair := range tt.table.pairs {
				token := tt.table.decode(pair.code)
				if token != pair.token {
					t.Errorf("decode(%d) = %q, want %q", pair.code, token, pair.token)
				}

				code, err := tt.table.encode(pair.token)
				if err != nil {
					t.Errorf("encode(%q) error = %v", pair.token, err)
					continue
				}
				if code != pair.code {
					t.Errorf("encode(%q) = %d, want %d", pair.token, code, pair.code)
				}
			}
		})
	}
}

func TestCodeTableDecodeUnknown(t *testing.T) {
	tests := []struct {
		name  string
		table *codeTable
		codes []int
		want  string
	}{
		{"operation mode", &operationModeTable, []int{-1, 0, 4, 6, 99}, "undefined"},
		{"horizontal vane", &vaneHorizontalTable, []int{-1, 6, 7, 9, 13}, "undefined"},
		{"vertical vane", &vaneVerticalTable, []int{-1, 6, 8, 12, 99}, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, code := range tt.codes {
				if got := tt.table.decode(code); got != tt.want {
					t.Errorf("decode(%d) = %q, want %q", code, got, tt.want)
				}
			}
		})
	}
}

func TestCodeTableEncodeUnknown(t *testing.T) {
	tests := []struct {
		name   string
		table  *codeTable
		tokens []string
	}{
		{"operation mode", &operationModeTable, []string{"undefined", "", "HEAT", "warm", "auto"}},
		{"horizontal vane", &vaneHorizontalTable, []string{"undefined", "", "6", "left"}},
		{"vertical vane", &vaneVerticalTable, []string{"undefined", "", "split", "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, token := range tt.tokens {
				_, err := tt.table.encode(token)
				if err == nil {
					t.Errorf("encode(%q) expected error, got nil", token)
					continue
				}
				if !IsInvalidValue(err) {
					t.Errorf("encode(%q) error = %v, want InvalidValue", token, err)
				}
			}
		})
	}
}

func TestFanSpeedDecode(t *testing.T) {
	tests := []struct {
		code int
		want FanSpeed
	}{
		{0, FanSpeedAuto},
		{1, "speed-1"},
		{2, "speed-2"},
		{5, "speed-5"},
		{17, "speed-17"},
	}

	for _, tt := range tests {
		if got := decodeFanSpeed(tt.code); got != tt.want {
			t.Errorf("decodeFanSpeed(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFanSpeedEncode(t *testing.T) {
	tests := []struct {
		name    string
		speed   FanSpeed
		want    int
		wantErr bool
	}{
		{"auto", FanSpeedAuto, 0, false},
		{"speed 1", "speed-1", 1, false},
		{"speed 3", "speed-3", 3, false},
		{"high step", "speed-17", 17, false},
		{"missing suffix", "speed-", 0, true},
		{"non-numeric suffix", "speed-fast", 0, true},
		{"negative suffix", "speed--2", 0, true},
		{"no slug", "3", 0, true},
		{"empty", "", 0, true},
		{"unrelated token", "turbo", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeFanSpeed(tt.speed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("encodeFanSpeed(%q) error = %v, wantErr %v", tt.speed, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsInvalidValue(err) {
					t.Errorf("encodeFanSpeed(%q) error = %v, want InvalidValue", tt.speed, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("encodeFanSpeed(%q) = %d, want %d", tt.speed, got, tt.want)
			}
		})
	}
}

func TestFanSpeedRoundTrip(t *testing.T) {
	for code := 0; code <= 5; code++ {
		token := decodeFanSpeed(code)
		got, err := encodeFanSpeed(token)
		if err != nil {
			t.Fatalf("encodeFanSpeed(%q) error = %v", token, err)
		}
		if got != code {
			t.Errorf("round trip for code %d = %d", code, got)
		}
	}
}

func TestFanSpeedOf(t *testing.T) {
	if FanSpeedOf(0) != FanSpeedAuto {
		t.Errorf("FanSpeedOf(0) = %q, want auto", FanSpeedOf(0))
	}
	if FanSpeedOf(4) != "speed-4" {
		t.Errorf("FanSpeedOf(4) = %q, want speed-4", FanSpeedOf(4))
	}
}
