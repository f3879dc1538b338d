package encoding

import "testing"

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{1, 1}, []float32{5, 5}, 1},
		{"zero left", []float32{0, 0}, []float32{1, 1}, 0},
		{"zero right", []float32{1, 1}, []float32{0, 0}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"both empty", nil, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if !almostEqual(got, tc.want) {
				t.Fatalf("CosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCosineSimilarityIsSymmetric(t *testing.T) {
	a := []float32{0.2, 0.5, 0.1}
	b := []float32{0.9, 0.1, 0.4}
	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Fatal("similarity should not depend on argument order")
	}
}
