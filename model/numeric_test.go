package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCreateStoryPoints(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{8, false},
		{21, false},
		{22, true},
		{-5, true},
	}

	for _, tt := range tests {
		got, err := CreateStoryPoints(tt.n)
		if tt.wantErr {
			if !errors.Is(err, ErrStoryPointsOutOfRange) {
				t.Errorf("CreateStoryPoints(%d): got err %v, want ErrStoryPointsOutOfRange", tt.n, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("CreateStoryPoints(%d): unexpected error %v", tt.n, err)
			continue
		}
		if got.Int() != tt.n {
			t.Errorf("CreateStoryPoints(%d) = %d", tt.n, got)
		}
	}
}

func TestCreateHours(t *testing.T) {
	if _, err := CreateHours(-0.5); !errors.Is(err, ErrNegativeHours) {
		t.Errorf("CreateHours(-0.5): got %v, want ErrNegativeHours", err)
	}
	h, err := CreateHours(0)
	if err != nil || h.Float() != 0 {
		t.Errorf("CreateHours(0) = %v, %v", h, err)
	}
	h, err = CreateHours(7.5)
	if err != nil || h.Float() != 7.5 {
		t.Errorf("CreateHours(7.5) = %v, %v", h, err)
	}
}

func TestStoryPointsUnmarshalJSON(t *testing.T) {
	var sp StoryPoints
	if err := json.Unmarshal([]byte("13"), &sp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if sp != 13 {
		t.Errorf("got %d, want 13", sp)
	}
	if err := json.Unmarshal([]byte("34"), &sp); !errors.Is(err, ErrStoryPointsOutOfRange) {
		t.Errorf("Unmarshal(34): got %v, want ErrStoryPointsOutOfRange", err)
	}
	if err := json.Unmarshal([]byte(`"five"`), &sp); err == nil {
		t.Error("Unmarshal of a string should fail")
	}
}

func TestHoursUnmarshalJSON(t *testing.T) {
	var h Hours
	if err := json.Unmarshal([]byte("2.25"), &h); err != nil || h != 2.25 {
		t.Fatalf("Unmarshal(2.25) = %v, %v", h, err)
	}
	if err := json.Unmarshal([]byte("-1"), &h); !errors.Is(err, ErrNegativeHours) {
		t.Errorf("Unmarshal(-1): got %v, want ErrNegativeHours", err)
	}
}
