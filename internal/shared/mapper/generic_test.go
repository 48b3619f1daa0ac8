package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

type testModel struct {
	ID    uint
	Value int
}

type testEntity struct {
	Result string
}

func TestMapSliceWithError(t *testing.T) {
	tests := []struct {
		name        string
		input       []int
		mapFunc     func(int) (string, error)
		want        []string
		wantErr     bool
		errContains string
	}{
		{
			name:  "maps all elements",
			input: []int{1, 2, 3},
			mapFunc: func(v int) (string, error) {
				return strconv.Itoa(v), nil
			},
			want: []string{"1", "2", "3"},
		},
		{
			name:  "nil input returns nil",
			input: nil,
			mapFunc: func(v int) (string, error) {
				return strconv.Itoa(v), nil
			},
			want: nil,
		},
		{
			name:  "empty input returns empty",
			input: []int{},
			mapFunc: func(v int) (string, error) {
				return strconv.Itoa(v), nil
			},
			want: []string{},
		},
		{
			name:  "stops at first error",
			input: []int{1, -1, 3},
			mapFunc: func(v int) (string, error) {
				if v < 0 {
					return "", errors.New("negative value")
				}
				return strconv.Itoa(v), nil
			},
			wantErr:     true,
			errContains: "negative value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSliceWithError(tt.input, tt.mapFunc)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d elements, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMapSlicePtrWithID(t *testing.T) {
	mapFunc := func(m *testModel) (*testEntity, error) {
		if m.Value < 0 {
			return nil, errors.New("negative value")
		}
		return &testEntity{Result: fmt.Sprintf("v%d", m.Value)}, nil
	}
	getID := func(m *testModel) uint { return m.ID }

	t.Run("maps all elements", func(t *testing.T) {
		input := []*testModel{{ID: 1, Value: 10}, {ID: 2, Value: 20}}

		got, err := MapSlicePtrWithID(input, mapFunc, getID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d elements, want 2", len(got))
		}
		if got[0].Result != "v10" || got[1].Result != "v20" {
			t.Errorf("unexpected results: %+v", got)
		}
	})

	t.Run("nil input returns nil", func(t *testing.T) {
		got, err := MapSlicePtrWithID(nil, mapFunc, getID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("skips nil elements", func(t *testing.T) {
		input := []*testModel{{ID: 1, Value: 10}, nil, {ID: 3, Value: 30}}

		got, err := MapSlicePtrWithID(input, mapFunc, getID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d elements, want 2", len(got))
		}
	})

	t.Run("error includes item ID", func(t *testing.T) {
		input := []*testModel{{ID: 1, Value: 10}, {ID: 7, Value: -1}}

		_, err := MapSlicePtrWithID(input, mapFunc, getID)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if want := "ID 7"; !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	})
}
