package classifier

import (
	"context"
	"errors"
	"math"
	"testing"

	"sepal/internal/dataset"
	"sepal/internal/geom"
)

func TestModel_ProbAndPredict(t *testing.T) {
	t.Parallel()
	m := &Model{Beta0: 0, Beta1: 1, Beta2: 1}
	if got := m.Prob(0, 0); got != 0.5 {
		t.Errorf("probability on the boundary must be 0.5, got: %f", got)
	}
	if got := m.Prob(100, 100); got < 0.999 {
		t.Errorf("probability deep in class 1 must saturate, got: %f", got)
	}
	if got := m.Prob(-100, -100); got > 0.001 {
		t.Errorf("probability deep in class 0 must vanish, got: %f", got)
	}
	if m.Predict(1, 1) != 1 || m.Predict(-1, -1) != 0 {
		t.Errorf("prediction threshold at 0.5 is broken")
	}
}

func TestModel_Boundary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		m         *Model
		slope     float64
		intercept float64
		err       error
	}{
		{name: "positive", m: &Model{Beta0: 1, Beta1: 2, Beta2: 4}, slope: -0.5, intercept: -0.25},
		{name: "positive", m: &Model{Beta0: 0, Beta1: 1, Beta2: 1}, slope: -1, intercept: 0},
		{name: "err", m: &Model{Beta0: 1, Beta1: 2, Beta2: 0}, err: ErrVerticalBoundary},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			slope, intercept, err := test.m.Boundary()
			if test.name == "err" {
				if !errors.Is(err, test.err) {
					t.Errorf("expected error %v, got %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("the error should not be returned: %v", err)
			}
			if slope != test.slope || intercept != test.intercept {
				t.Errorf("boundary mismatch, got: (%f, %f), expected: (%f, %f)",
					slope, intercept, test.slope, test.intercept)
			}
		})
	}
}

func TestMethodFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		methodType MethodType
	}{
		{name: "positive", methodType: MethodTypeLBFGS},
		{name: "positive", methodType: MethodTypeGradientDescent},
		{name: "positive", methodType: MethodTypeNelderMead},
		{name: "err", methodType: MethodType("SIMPLEX")},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			method, err := MethodFor(test.methodType)
			if test.name == "err" {
				if !errors.Is(err, ErrUnknownMethod) {
					t.Errorf("expected error %v, got %v", ErrUnknownMethod, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("the error should not be returned: %v", err)
			}
			if method == nil {
				t.Errorf("method must not be nil")
			}
		})
	}
}

func TestNew_UnknownMethod(t *testing.T) {
	t.Parallel()
	if _, err := New(WithMethod(MethodType("SIMPLEX"))); err == nil {
		t.Errorf("an unknown method must fail fitter construction")
	}
}

func TestFitter_FitSingleClass(t *testing.T) {
	t.Parallel()
	f, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	ds := &dataset.Dataset{
		Points: []geom.Point{geom.New(0, 0), geom.New(1, 1), geom.New(2, 2)},
		Labels: []int{0, 0, 0},
	}
	if _, err := f.Fit(context.Background(), ds); !errors.Is(err, ErrSingleClass) {
		t.Errorf("expected error %v, got %v", ErrSingleClass, err)
	}
}

func TestFitter_FitSeparatedClusters(t *testing.T) {
	t.Parallel()
	ds, err := dataset.New().Generate(2.0)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	f, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}
	model, err := f.Fit(context.Background(), ds)
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}

	if model.Beta1+model.Beta2 <= 0 {
		t.Errorf("slope coefficients must point towards class 1, got: b1=%f b2=%f", model.Beta1, model.Beta2)
	}
	if model.Beta0 >= 0 {
		t.Errorf("intercept must be negative for a shifted class 1, got: %f", model.Beta0)
	}

	correct := 0
	for i, p := range ds.Points {
		if model.Predict(p.Dim(0), p.Dim(1)) == ds.Labels[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(ds.Len())
	if accuracy < 0.9 {
		t.Errorf("training accuracy on well separated clusters too low: %f", accuracy)
	}
}

func TestFitter_FitConvergesAcrossSweepWindow(t *testing.T) {
	t.Parallel()
	g := dataset.New()
	f, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}

	for _, d := range []float64{0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0} {
		ds, err := g.Generate(d)
		if err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
		model, err := f.Fit(context.Background(), ds)
		if err != nil {
			t.Fatalf("fit must converge at distance %.2f, got: %v", d, err)
		}
		for _, beta := range []float64{model.Beta0, model.Beta1, model.Beta2} {
			if math.IsNaN(beta) || math.IsInf(beta, 0) {
				t.Fatalf("fit at distance %.2f produced a non-finite coefficient: %+v", d, model)
			}
		}
	}
}

func TestFitter_SlopeNormGrowsWithSeparation(t *testing.T) {
	t.Parallel()
	g := dataset.New()
	f, err := New()
	if err != nil {
		t.Fatalf("the error should not be returned: %v", err)
	}

	norm := func(d float64) float64 {
		ds, err := g.Generate(d)
		if err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
		model, err := f.Fit(context.Background(), ds)
		if err != nil {
			t.Fatalf("the error should not be returned: %v", err)
		}
		return math.Hypot(model.Beta1, model.Beta2)
	}

	near, far := norm(0.25), norm(2.0)
	if far <= near {
		t.Errorf("slope norm must grow with separation, got: %f at 0.25 vs %f at 2.0", near, far)
	}
}
