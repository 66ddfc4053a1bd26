package imaging

import (
	"errors"
	"testing"
)

func TestBoxKernel(t *testing.T) {
	k, err := BoxKernel(1.0, 5)
	if err != nil {
		t.Fatalf("BoxKernel failed: %v", err)
	}

	if len(k) != 5 {
		t.Fatalf("rows: got %d, want 5", len(k))
	}
	for y, row := range k {
		if len(row) != 5 {
			t.Fatalf("row %d: got %d columns, want 5", y, len(row))
		}
		for x, v := range row {
			if v != 1.0 {
				t.Errorf("cell (%d,%d): got %v, want 1.0", x, y, v)
			}
		}
	}
}

func TestBoxKernel_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -3, 2, 4} {
		if _, err := BoxKernel(1.0, size); !errors.Is(err, ErrInvalidKernelShape) {
			t.Errorf("BoxKernel(1, %d): got %v, want ErrInvalidKernelShape", size, err)
		}
	}
}

func TestGaussianKernel_NotImplemented(t *testing.T) {
	k, err := GaussianKernel(5, 1.4)
	if !errors.Is(err, ErrKernelNotImplemented) {
		t.Fatalf("got %v, want ErrKernelNotImplemented", err)
	}
	if k != nil {
		t.Errorf("kernel: got %v, want nil", k)
	}
}

func TestKernel_Dimensions(t *testing.T) {
	tests := []struct {
		name    string
		kernel  Kernel
		want    Dimension
		wantErr bool
	}{
		{"1x1", Kernel{{1}}, Dimension{Rows: 1, Cols: 1}, false},
		{"3x3", horizontalEdgeMask, Dimension{Rows: 3, Cols: 3}, false},
		{"empty", Kernel{}, Dimension{}, true},
		{"empty row", Kernel{{}}, Dimension{}, true},
		{"ragged", Kernel{{1, 1, 1}, {1, 1}, {1, 1, 1}}, Dimension{}, true},
		{"not square", Kernel{{1, 1, 1}}, Dimension{}, true},
		{"even", Kernel{{1, 1}, {1, 1}}, Dimension{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.kernel.Dimensions()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKernelShape) {
					t.Fatalf("got %v, want ErrInvalidKernelShape", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dimensions failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDimension_Helpers(t *testing.T) {
	d := Dimension{Rows: 5, Cols: 5}
	if d.Half() != 2 {
		t.Errorf("Half: got %d, want 2", d.Half())
	}
	if d.Area() != 25 {
		t.Errorf("Area: got %d, want 25", d.Area())
	}
}

func TestNewKernel_CopiesRows(t *testing.T) {
	rows := [][]float64{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}

	k, err := NewKernel(rows)
	if err != nil {
		t.Fatalf("NewKernel failed: %v", err)
	}

	rows[1][1] = 42
	if k[1][1] != 1 {
		t.Errorf("kernel shares storage with input: center is %v", k[1][1])
	}
}

func TestNewKernel_Invalid(t *testing.T) {
	_, err := NewKernel([][]float64{{1, 2}, {3, 4}})
	if !errors.Is(err, ErrInvalidKernelShape) {
		t.Errorf("got %v, want ErrInvalidKernelShape", err)
	}
}
