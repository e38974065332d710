// Package cluster provides the fixed-k partitional clustering used for the
// latest-year figure.
package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// Point is one observation in feature space.
type Point []float64

// Standardize rescales values to zero mean and unit variance. A zero standard
// deviation leaves the centered values unscaled.
func Standardize(values []float64) []float64 {
	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)
	out := make([]float64, len(values))
	for i, v := range values {
		if std == 0 || math.IsNaN(std) {
			out[i] = v - mean
		} else {
			out[i] = (v - mean) / std
		}
	}
	return out
}

// Partition runs k-means (Lloyd's algorithm) over points with a deterministic
// seed and returns the cluster label of each point. It fails explicitly when
// fewer than k distinct points exist, rather than producing a degenerate
// assignment.
//
// No clustering library ships the fixed-seed contract this needs, so the
// iteration is implemented here behind this narrow function; callers only
// depend on (points, k, seed) -> labels.
func Partition(points []Point, k int, seed int64) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if distinct(points) < k {
		return nil, fmt.Errorf("need at least %d distinct points, have %d", k, distinct(points))
	}
	dim := len(points[0])
	for _, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("points have mixed dimensions")
		}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := initialCentroids(points, k, rng)
	labels := make([]int, len(points))

	const maxIterations = 100
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearest(p, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		sums := make([]Point, k)
		for c := range sums {
			sums[c] = make(Point, dim)
		}
		for i, p := range points {
			counts[labels[i]]++
			for d, v := range p {
				sums[labels[i]][d] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Re-seed an emptied cluster with a random point.
				centroids[c] = append(Point(nil), points[rng.Intn(len(points))]...)
				continue
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}
	return labels, nil
}

// initialCentroids picks k distinct points as starting centroids.
func initialCentroids(points []Point, k int, rng *rand.Rand) []Point {
	centroids := make([]Point, 0, k)
	seen := make(map[string]bool)
	for _, i := range rng.Perm(len(points)) {
		key := fmt.Sprint(points[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		centroids = append(centroids, append(Point(nil), points[i]...))
		if len(centroids) == k {
			break
		}
	}
	return centroids
}

func nearest(p Point, centroids []Point) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		d := 0.0
		for i := range p {
			diff := p[i] - centroid[i]
			d += diff * diff
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func distinct(points []Point) int {
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		seen[fmt.Sprint(p)] = true
	}
	return len(seen)
}
