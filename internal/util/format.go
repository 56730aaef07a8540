package util

import "fmt"

// FormatForce formats newtons with two decimals, without the unit.
func FormatForce(n float64) string {
	return fmt.Sprintf("%.2f", n)
}

// FormatNewtons formats a force as "2.94 N".
func FormatNewtons(n float64) string {
	return FormatForce(n) + " N"
}

// FormatMass formats kilograms with one decimal, without the unit.
func FormatMass(kg float64) string {
	return fmt.Sprintf("%.1f", kg)
}

// FormatMu formats a friction coefficient with two decimals.
func FormatMu(mu float64) string {
	return fmt.Sprintf("%.2f", mu)
}
