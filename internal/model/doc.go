// Package model defines the data types shared by the coinsheet pipeline.
//
// Conventions:
//   - Money and percentages: decimal.Decimal, never float64
//   - Timestamps: time.Time in ReportingZone (UTC+5:30)
//   - Nothing here outlives a single loop cycle
package model
