package types_test

import (
	"testing"

	"github.com/duke-colab/bluebook/pkg/domain/types"
)

func TestDUID_IsCanonical(t *testing.T) {
	tests := []struct {
		name string
		duid types.DUID
		want bool
	}{
		{"all digits", "1234567", true},
		{"single digit", "5", true},
		{"empty", "", false},
		{"netid style", "jdoe", false},
		{"full name", "John Doe", false},
		{"digits with space", "123 456", false},
		{"digits with letter", "123a", false},
		{"negative sign", "-123", false},
		{"unicode digits", "１２３", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.duid.IsCanonical(); got != tt.want {
				t.Errorf("DUID(%q).IsCanonical() = %v, want %v", tt.duid, got, tt.want)
			}
		})
	}
}

func TestLocalID_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      types.LocalID
		wantErr bool
	}{
		{"first assigned id", 1, false},
		{"large id", 98765, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("LocalID.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventID_Validate(t *testing.T) {
	if err := types.EventID("CAL-123456").Validate(); err != nil {
		t.Errorf("EventID.Validate() unexpected error: %v", err)
	}
	if err := types.EventID("").Validate(); err == nil {
		t.Error("EventID.Validate() expected error for empty id")
	}
}
