package core

import (
	"sort"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// meanStd returns the mean and the sample (n-1) standard deviation of xs.
// A single observation has a standard deviation of zero. Callers must not
// pass an empty slice.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// mean returns the arithmetic mean of xs.
func mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// median returns the middle value of xs, averaging the two middle values
// when the length is even.
func median(xs []float64) float64 {
	return series.Floats(xs).Median()
}

// round2 rounds half away from zero to two decimal places.
func round2(x float64) float64 {
	return scalar.Round(x, 2)
}

// group is a set of records sharing a key, in input order.
type group[K comparable] struct {
	Key     K
	Records []Record
}

// groupBy partitions records by key. Groups are sorted by less; groups with
// equal keys cannot occur, and records inside a group keep input order.
func groupBy[K comparable](records []Record, key func(Record) K, less func(a, b K) bool) []group[K] {
	index := make(map[K]int)
	var groups []group[K]

	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i].Key, groups[j].Key)
	})

	return groups
}

// pair is a two-level group key such as (city, traffic).
type pair struct {
	first, second string
}

func pairLess(a, b pair) bool {
	if a.first != b.first {
		return a.first < b.first
	}
	return a.second < b.second
}

func stringLess(a, b string) bool { return a < b }

func intLess(a, b int) bool { return a < b }

// column extracts one numeric value per record.
func column(records []Record, value func(Record) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = value(r)
	}
	return out
}

func minutesOf(r Record) float64 { return float64(r.DeliveryMinutes) }

func ratingOf(r Record) float64 { return r.Rating }
