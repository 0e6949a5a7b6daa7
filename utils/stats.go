package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	LivingCells          int
	Density              float64
	StartTime            time.Time

	cells int
}

// NewStats tracks a run over a board of the given number of cells
func NewStats(cells int) *Stats {
	return &Stats{StartTime: time.Now(), cells: cells}
}

// Update records one computed generation
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.LivingCells = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}
	if s.cells > 0 {
		s.Density = float64(population) / float64(s.cells) * 100
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
