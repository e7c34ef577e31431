package surface

import (
	"errors"
	"math"
	"testing"

	"sepal/internal/classifier"
	"sepal/internal/geom"
)

func TestNew_BadResolution(t *testing.T) {
	t.Parallel()
	if _, err := New(WithResolution(1)); !errors.Is(err, ErrResolution) {
		t.Errorf("expected error %v, got %v", ErrResolution, err)
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()
	b, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	model := &classifier.Model{Beta0: 0, Beta1: 1, Beta2: 1}
	bounds := geom.Rect{XMin: -2, XMax: 2, YMin: -1, YMax: 3}

	surf, err := b.Build(model, bounds)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}

	nx, ny := surf.Resolution()
	if nx != 200 || ny != 200 {
		t.Fatalf("default lattice must be 200x200, got: %dx%d", nx, ny)
	}

	window := surf.Window()
	expected := bounds.Pad(1)
	if window != expected {
		t.Errorf("window mismatch, got: %+v, expected: %+v", window, expected)
	}

	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			v := surf.At(ix, iy)
			if v < 0 || v > 1 {
				t.Fatalf("probability out of range at (%d,%d): %f", ix, iy, v)
			}
		}
	}

	// the field grows along the model direction
	if surf.At(nx-1, ny-1) <= surf.At(0, 0) {
		t.Errorf("field must rise towards class 1, got: %f at min corner, %f at max corner",
			surf.At(0, 0), surf.At(nx-1, ny-1))
	}

	// lattice values match the model pointwise
	v := surf.At(3, 7)
	want := model.Prob(surf.Xs[3], surf.Ys[7])
	if v != want {
		t.Errorf("lattice value mismatch, got: %f, expected: %f", v, want)
	}
}

func TestBuilder_AxesAreUniform(t *testing.T) {
	t.Parallel()
	b, err := New(WithResolution(5), WithPadding(0))
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	model := &classifier.Model{Beta0: 0, Beta1: 1, Beta2: 0.5}
	surf, err := b.Build(model, geom.Rect{XMin: 0, XMax: 4, YMin: 0, YMax: 8})
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	wantXs := []float64{0, 1, 2, 3, 4}
	wantYs := []float64{0, 2, 4, 6, 8}
	for i := range wantXs {
		if math.Abs(surf.Xs[i]-wantXs[i]) > 1e-12 {
			t.Errorf("x axis node %d mismatch, got: %f, expected: %f", i, surf.Xs[i], wantXs[i])
		}
		if math.Abs(surf.Ys[i]-wantYs[i]) > 1e-12 {
			t.Errorf("y axis node %d mismatch, got: %f, expected: %f", i, surf.Ys[i], wantYs[i])
		}
	}
}

func TestBuilder_NilProber(t *testing.T) {
	t.Parallel()
	b, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	if _, err := b.Build(nil, geom.Rect{}); err == nil {
		t.Errorf("a nil prober must fail the build")
	}
}
