package bit

import (
	"testing"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x12, 0x34, 0x1234},
	}

	for _, tt := range tests {
		result := Combine(tt.high, tt.low)
		if result != tt.expected {
			t.Errorf("Combine(%X, %X) = %X; want %X", tt.high, tt.low, result, tt.expected)
		}
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 2, false},
		{0b10101010, 7, true},
	}

	for _, tt := range tests {
		result := IsSet(tt.index, tt.value)
		if result != tt.expected {
			t.Errorf("IsSet(%d, %08b) = %v; want %v", tt.index, tt.value, result, tt.expected)
		}
	}
}

func TestIsSet16(t *testing.T) {
	tests := []struct {
		value    uint16
		index    uint16
		expected bool
	}{
		{0x0100, 8, true},
		{0x0100, 7, false},
		{0xFFFF, 15, true},
	}

	for _, tt := range tests {
		result := IsSet16(tt.index, tt.value)
		if result != tt.expected {
			t.Errorf("IsSet16(%d, %016b) = %v; want %v", tt.index, tt.value, result, tt.expected)
		}
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected uint8
	}{
		{0b10101010, 0, 0b10101011},
		{0b10101010, 2, 0b10101110},
		{0b10101010, 7, 0b10101010},
	}

	for _, tt := range tests {
		result := Set(tt.index, tt.value)
		if result != tt.expected {
			t.Errorf("Set(%d, %08b) = %08b; want %08b", tt.index, tt.value, result, tt.expected)
		}
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected uint8
	}{
		{0b10101011, 0, 0b10101010},
		{0b10101011, 1, 0b10101001},
		{0b10101011, 7, 0b00101011},
	}

	for _, tt := range tests {
		result := Reset(tt.index, tt.value)
		if result != tt.expected {
			t.Errorf("Reset(%d, %08b) = %08b; want %08b", tt.index, tt.value, result, tt.expected)
		}
	}
}

func TestLowHigh(t *testing.T) {
	tests := []struct {
		value        uint16
		expectedLow  uint8
		expectedHigh uint8
	}{
		{0xABCD, 0xCD, 0xAB},
		{0x0000, 0x00, 0x00},
		{0xFFFF, 0xFF, 0xFF},
	}

	for _, tt := range tests {
		if got := Low(tt.value); got != tt.expectedLow {
			t.Errorf("Low(%X) = %X; want %X", tt.value, got, tt.expectedLow)
		}
		if got := High(tt.value); got != tt.expectedHigh {
			t.Errorf("High(%X) = %X; want %X", tt.value, got, tt.expectedHigh)
		}
	}
}
